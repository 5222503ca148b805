package uniqid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength indicates a requested identifier length below 1
	ErrInvalidLength = errors.New("length must be at least 1")

	// ErrProviderExhausted indicates the byte provider returned no bytes.
	// This is a fault in the provider or its source, not in the caller's
	// arguments.
	ErrProviderExhausted = errors.New("byte provider returned no bytes")
)

// ArgumentError reports an invalid argument passed by the caller. Err is one
// of ErrInvalidLength, charset.ErrEmpty or charset.ErrTooLong.
type ArgumentError struct {
	Arg   string
	Value any
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("uniqid: invalid %s %#v: %v", e.Arg, e.Value, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}
