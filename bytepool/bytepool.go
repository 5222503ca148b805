// Package bytepool hands out random bytes, either straight from a source or
// from a pre-filled buffer that amortizes the cost of each call to it.
package bytepool

import (
	"errors"
	"fmt"
	"io"

	"github.com/eduardolat/uniqid/entropy"
)

var (
	// ErrInvalidCapacity indicates a pool size that is not positive
	ErrInvalidCapacity = errors.New("pool capacity must be positive")
	// ErrInvalidCount indicates a byte count that is not positive
	ErrInvalidCount = errors.New("byte count must be positive")
)

// Provider supplies random bytes.
//
// Bytes returns count bytes. The slice may be a view into memory owned by the
// provider: it is only valid until the next call on the same provider and must
// not be modified. A slice shorter than count means the underlying source
// stopped producing bytes.
type Provider interface {
	Bytes(count int) ([]byte, error)
}

// Observer is notified about pool activity. Implementations must be cheap;
// they are called on the generating goroutine.
type Observer interface {
	// Refilled reports a refill that read n bytes from the source
	Refilled(n int)
	// Bypassed reports a request of n bytes served directly from the source
	Bypassed(n int)
}

// Direct forwards every request to its source. It keeps no state.
type Direct struct {
	src io.Reader
}

// NewDirect creates a Direct provider. A nil source means the platform CSPRNG.
func NewDirect(src io.Reader) (*Direct, error) {
	if src == nil {
		var err error
		if src, err = entropy.Crypto(); err != nil {
			return nil, err
		}
	}
	return &Direct{src: src}, nil
}

// Bytes reads count fresh bytes from the source into a new slice.
func (d *Direct) Bytes(count int) ([]byte, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	return readFresh(d.src, count)
}

// readFresh allocates count bytes and fills them. A source that runs dry is
// not an error here; the short slice tells the caller.
func readFresh(src io.Reader, count int) ([]byte, error) {
	buf := make([]byte, count)
	n, err := io.ReadFull(src, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf[:n], nil
}
