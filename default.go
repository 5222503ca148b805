package uniqid

import (
	"sync"
)

// DefaultPoolSize is the pool size of the process-wide Generator
const DefaultPoolSize = 32 * 1024

var (
	defaultOnce sync.Once
	defaultGen  *Generator
	defaultErr  error
)

// Default returns the process-wide Generator. It is created on first use over
// the platform CSPRNG, is safe for concurrent use and is never torn down.
func Default() (*Generator, error) {
	defaultOnce.Do(func() {
		defaultGen, defaultErr = New(DefaultPoolSize, WithLocking())
	})
	return defaultGen, defaultErr
}

// String returns a DefaultLength base36 identifier from the default Generator.
func String() (string, error) {
	g, err := Default()
	if err != nil {
		return "", err
	}
	return g.Generate()
}

// StringWith returns an identifier of the given length over chars from the
// default Generator.
func StringWith(length int, chars string) (string, error) {
	g, err := Default()
	if err != nil {
		return "", err
	}
	return g.GenerateWith(length, chars)
}

// MustString is like String but panics on error.
// Use only where a missing secure random source should crash the process.
func MustString() string {
	id, err := String()
	if err != nil {
		panic(err)
	}
	return id
}
