// Package nanoid provides NanoID-format identifiers for callers that need
// that exact format rather than the pooled uniqid output.
package nanoid

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// DefaultLength is the canonical NanoID length (~126 bits of entropy)
	DefaultLength = 21
	// MaxAlphabet is the largest alphabet go-nanoid accepts
	MaxAlphabet = 255
)

// Generate creates a canonical NanoID of the given length over the URL-safe
// alphabet. Every call reads crypto/rand directly; there is no pooling.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("nanoid: length must be positive, got %d", length)
	}
	id, err := gonanoid.New(length)
	if err != nil {
		return "", fmt.Errorf("nanoid: %w", err)
	}
	return id, nil
}

// GenerateAlphabet creates a NanoID of the given length over a custom
// alphabet.
func GenerateAlphabet(alphabet string, length int) (string, error) {
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("nanoid: %w", err)
	}
	return id, nil
}
