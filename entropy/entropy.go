// Package entropy provides the cryptographically secure byte sources that
// identifiers are minted from.
//
// A source is any io.Reader. The platform CSPRNG is obtained through Crypto,
// which probes it once and refuses to hand it out if it does not work.
package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrUnavailable indicates the platform has no working secure random source.
// No identifiers can be generated safely when this is returned.
var ErrUnavailable = errors.New("no secure random source available; refusing to generate identifiers")

var (
	probeOnce sync.Once
	probeErr  error

	// platform is swapped in tests to simulate a broken CSPRNG
	platform io.Reader = rand.Reader
)

// Crypto returns the platform CSPRNG. The first call reads a probe byte from
// it; if that fails, this and every later call return an error wrapping
// ErrUnavailable. It never falls back to a weaker source.
func Crypto() (io.Reader, error) {
	probeOnce.Do(func() {
		probeErr = probe(platform)
	})
	if probeErr != nil {
		return nil, probeErr
	}
	return platform, nil
}

func probe(r io.Reader) error {
	if r == nil {
		return ErrUnavailable
	}
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Func adapts a "give me n random bytes" function to an io.Reader.
type Func func(n int) ([]byte, error)

// Read fills p with whatever the function returns for len(p). A function
// that yields no bytes is reported as io.EOF so callers notice the broken
// source instead of spinning on it.
func (f Func) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := f(len(p))
	n := copy(p, b)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
