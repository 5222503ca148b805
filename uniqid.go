// Package uniqid generates cryptographically random identifiers over an
// arbitrary alphabet of up to 256 characters.
//
// Characters are picked by rejection sampling, so every character of the
// alphabet is equally likely no matter its size. Random bytes come from a
// bytepool.Provider; a Generator owns a bytepool.Pool so that minting many
// identifiers costs one read of the secure source per pool's worth of bytes.
//
//	id, err := uniqid.String() // 24 base36 characters from the default pool
package uniqid

import (
	"fmt"
	"strings"

	"github.com/eduardolat/uniqid/bytepool"
	"github.com/eduardolat/uniqid/charset"
)

const (
	// DefaultLength is the identifier length used when none is given
	DefaultLength = 24

	// DefaultOvershoot is how many bytes beyond the number still needed are
	// requested per round, so a few rejections rarely cost another round.
	// Only throughput depends on it.
	DefaultOvershoot = 8
)

// Generate returns a string of length characters drawn uniformly from chars,
// using random bytes from p.
func Generate(length int, chars string, p bytepool.Provider) (string, error) {
	return GenerateBatch(length, chars, p, DefaultOvershoot)
}

// GenerateBatch is Generate with an explicit overshoot. Negative values are
// treated as zero.
func GenerateBatch(length int, chars string, p bytepool.Provider, overshoot int) (string, error) {
	table, err := resolve(length, chars)
	if err != nil {
		return "", err
	}
	id, _, err := sample(length, table, p, overshoot)
	return id, err
}

// resolve validates the arguments in the order callers see errors: length
// first, then the alphabet.
func resolve(length int, chars string) (charset.Table, error) {
	if length <= 0 {
		return charset.Table{}, &ArgumentError{Arg: "length", Value: length, Err: ErrInvalidLength}
	}
	table, err := charset.Lookup(chars)
	if err != nil {
		return charset.Table{}, &ArgumentError{Arg: "charset", Value: chars, Err: err}
	}
	return table, nil
}

// sample draws length characters of t from p and reports how many bytes it
// discarded. Bytes above t.Max are thrown away, never reused.
func sample(length int, t charset.Table, p bytepool.Provider, overshoot int) (string, int, error) {
	// Nothing is ever rejected when the alphabet divides 256, so asking for
	// more than needed would only waste pool bytes.
	if overshoot < 0 || t.Unbiased() {
		overshoot = 0
	}

	var sb strings.Builder
	sb.Grow(length)
	accepted, rejected := 0, 0

	for accepted < length {
		need := length - accepted
		batch, err := p.Bytes(need + overshoot)
		if err != nil {
			return "", rejected, fmt.Errorf("failed to get random bytes: %w", err)
		}
		if len(batch) == 0 {
			return "", rejected, ErrProviderExhausted
		}

		if t.Unbiased() {
			for _, b := range batch[:min(need, len(batch))] {
				t.Append(&sb, b)
				accepted++
			}
			continue
		}

		for _, b := range batch {
			if b > t.Max {
				rejected++
				continue
			}
			t.Append(&sb, b)
			accepted++
			if accepted == length {
				break
			}
		}
	}

	return sb.String(), rejected, nil
}
