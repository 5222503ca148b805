// Package charset defines the standard identifier alphabets and the
// rejection threshold that keeps sampling over an alphabet unbiased.
package charset

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// Base36 is digits and lowercase letters; safe where identifiers may be
	// compared case-insensitively
	Base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

	// Base62 is digits, lowercase and uppercase letters; the densest
	// alphanumeric alphabet
	Base62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// URLSafe is the 64 character NanoID alphabet
	URLSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

	// MaxLength is the largest alphabet, in characters, a single random byte
	// can index
	MaxLength = 256

	// cacheSize bounds the number of memoized alphabets. Real callers use a
	// handful; an eviction only costs recomputing one entry.
	cacheSize = 1024
)

var (
	// ErrEmpty indicates an alphabet with no characters
	ErrEmpty = errors.New("charset must not be empty")
	// ErrTooLong indicates an alphabet longer than MaxLength characters
	ErrTooLong = errors.New("charset must not exceed 256 characters")
)

// Table is a validated alphabet together with its rejection threshold.
//
// Characters are runes when Chars is valid UTF-8 with multi-byte characters,
// and single bytes otherwise (ASCII, or input that is not valid UTF-8).
type Table struct {
	// Chars is the alphabet as given
	Chars string
	// Max is the largest byte value that maps onto the alphabet without
	// modulo bias: floor(256/len)*len - 1. Bytes above it must be discarded.
	Max byte
	// runes is nil on the byte path
	runes []rune
}

// Len returns the number of characters in the alphabet
func (t Table) Len() int {
	if t.runes != nil {
		return len(t.runes)
	}
	return len(t.Chars)
}

// Unbiased reports whether every byte value is usable, which is the case
// when the alphabet length divides 256.
func (t Table) Unbiased() bool {
	return t.Max == 255
}

// Append writes the character selected by the accepted byte b to sb.
// b must not exceed t.Max.
func (t Table) Append(sb *strings.Builder, b byte) {
	if t.runes != nil {
		sb.WriteRune(t.runes[int(b)%len(t.runes)])
		return
	}
	sb.WriteByte(t.Chars[int(b)%len(t.Chars)])
}

// Contains reports whether r is one of the alphabet's characters
func (t Table) Contains(r rune) bool {
	if t.runes != nil {
		return slices.Contains(t.runes, r)
	}
	return r < utf8.RuneSelf && strings.IndexByte(t.Chars, byte(r)) >= 0
}

var tables = mustCache(cacheSize)

func mustCache(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the table for chars, computing and memoizing it on first use.
func Lookup(chars string) (Table, error) {
	if v, ok := tables.Get(chars); ok {
		return v.(Table), nil
	}

	t, err := Compute(chars)
	if err != nil {
		return Table{}, err
	}
	tables.Add(chars, t)
	return t, nil
}

// Compute validates chars and derives its table without touching the cache.
func Compute(chars string) (Table, error) {
	if chars == "" {
		return Table{}, ErrEmpty
	}

	var runes []rune
	n := len(chars)
	if utf8.ValidString(chars) {
		if count := utf8.RuneCountInString(chars); count != n {
			runes = []rune(chars)
			n = count
		}
	}
	if n > MaxLength {
		return Table{}, fmt.Errorf("%w: got %d", ErrTooLong, n)
	}

	return Table{
		Chars: chars,
		Max:   MaxValid(n),
		runes: runes,
	}, nil
}

// MaxValid returns floor(256/n)*n - 1 for an alphabet of n characters,
// 1 <= n <= 256.
func MaxValid(n int) byte {
	return byte((256/n)*n - 1)
}
