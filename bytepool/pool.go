package bytepool

import (
	"errors"
	"fmt"
	"io"

	"github.com/eduardolat/uniqid/entropy"
)

// Pool serves random bytes as views into a fixed buffer that is refilled from
// the source in one read whenever it runs out.
//
// A Pool is not safe for concurrent use. Slices returned by Bytes alias the
// pool's buffer and are overwritten by a later refill, so consume them before
// calling the pool again.
type Pool struct {
	buf []byte
	// pos is the first unconsumed byte
	pos int
	// limit is the end of the bytes the last refill actually obtained;
	// buf[pos:limit] is always unconsumed random data
	limit    int
	src      io.Reader
	observer Observer
}

// Option configures a Pool
type Option func(*Pool)

// WithObserver reports refills and bypasses to o
func WithObserver(o Observer) Option {
	return func(p *Pool) {
		p.observer = o
	}
}

// New creates a pool of the given capacity and fills it immediately so the
// first request never pays for a cold start. A nil source means the platform
// CSPRNG.
func New(capacity int, src io.Reader, opts ...Option) (*Pool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if src == nil {
		var err error
		if src, err = entropy.Crypto(); err != nil {
			return nil, err
		}
	}

	p := &Pool{
		buf: make([]byte, capacity),
		src: src,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.Refill(); err != nil {
		return nil, err
	}
	return p, nil
}

// Capacity returns the pool size in bytes
func (p *Pool) Capacity() int {
	return len(p.buf)
}

// Remaining returns how many unconsumed bytes the pool holds
func (p *Pool) Remaining() int {
	return p.limit - p.pos
}

// Refill overwrites the whole buffer with fresh bytes from the source and
// rewinds the cursor.
func (p *Pool) Refill() error {
	n, err := io.ReadFull(p.src, p.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		p.pos, p.limit = 0, 0
		return fmt.Errorf("failed to refill byte pool: %w", err)
	}

	p.pos, p.limit = 0, n
	if p.observer != nil {
		p.observer.Refilled(n)
	}
	return nil
}

// Bytes returns the next count bytes of the pool, refilling first if fewer
// than count remain. Requests larger than the pool are read directly from the
// source into a fresh slice and leave the pool untouched.
func (p *Pool) Bytes(count int) ([]byte, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	if count > len(p.buf) {
		if p.observer != nil {
			p.observer.Bypassed(count)
		}
		return readFresh(p.src, count)
	}

	if p.pos+count > p.limit {
		if err := p.Refill(); err != nil {
			return nil, err
		}
	}

	end := min(p.pos+count, p.limit)
	out := p.buf[p.pos:end:end]
	p.pos = end
	return out, nil
}
