package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCharsets verifies named and literal alphabets.
func TestCharsets(t *testing.T) {
	tests := []struct {
		name     string
		charset  string
		alphabet string
	}{
		{name: "base36", charset: "base36", alphabet: base36},
		{name: "base62", charset: "BASE62", alphabet: "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{name: "urlsafe", charset: "urlsafe", alphabet: "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"},
		{name: "hex literal", charset: "0123456789abcdef", alphabet: "0123456789abcdef"},
		{name: "dna literal", charset: "ACGT", alphabet: "ACGT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, exitCode := runUniqid(t, "gen", "--charset", tt.charset, "--count", "200", "--length", "32")
			t.Logf("Stderr: %s", stderr)

			assert.Equal(t, 0, exitCode)
			assertIDs(t, splitIDs(stdout), 200, 32, tt.alphabet)
		})
	}
}
