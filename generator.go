package uniqid

import (
	"io"
	"sync"

	"github.com/eduardolat/uniqid/bytepool"
	"github.com/eduardolat/uniqid/charset"
)

// Observer receives pool activity and the number of bytes rejected while
// sampling.
type Observer interface {
	bytepool.Observer
	Rejected(n int)
}

// Generator mints identifiers from a pool it owns exclusively.
//
// A Generator is not safe for concurrent use unless it was created with
// WithLocking; use one Generator per goroutine otherwise.
type Generator struct {
	mu        *sync.Mutex
	pool      *bytepool.Pool
	length    int
	table     charset.Table
	overshoot int
	observer  Observer
}

type settings struct {
	src       io.Reader
	length    int
	chars     string
	overshoot int
	locking   bool
	observer  Observer
}

// Option configures a Generator
type Option func(*settings)

// WithSource sets the random source the pool refills from (default: the
// platform CSPRNG)
func WithSource(src io.Reader) Option {
	return func(s *settings) {
		s.src = src
	}
}

// WithLength sets the length used by Generate (default: DefaultLength)
func WithLength(length int) Option {
	return func(s *settings) {
		s.length = length
	}
}

// WithCharset sets the alphabet used by Generate (default: charset.Base36)
func WithCharset(chars string) Option {
	return func(s *settings) {
		s.chars = chars
	}
}

// WithOvershoot sets how many extra bytes are requested per sampling round
// (default: DefaultOvershoot)
func WithOvershoot(n int) Option {
	return func(s *settings) {
		s.overshoot = n
	}
}

// WithLocking serializes every call on the Generator behind a mutex, making
// it safe to share between goroutines.
func WithLocking() Option {
	return func(s *settings) {
		s.locking = true
	}
}

// WithObserver reports pool refills, bypasses and rejected bytes to o
func WithObserver(o Observer) Option {
	return func(s *settings) {
		s.observer = o
	}
}

// New creates a Generator backed by a pool of poolSize bytes. The pool is
// filled before New returns, so a missing secure source fails here.
func New(poolSize int, opts ...Option) (*Generator, error) {
	s := settings{
		length:    DefaultLength,
		chars:     charset.Base36,
		overshoot: DefaultOvershoot,
	}
	for _, opt := range opts {
		opt(&s)
	}

	table, err := resolve(s.length, s.chars)
	if err != nil {
		return nil, err
	}

	var poolOpts []bytepool.Option
	if s.observer != nil {
		poolOpts = append(poolOpts, bytepool.WithObserver(s.observer))
	}
	pool, err := bytepool.New(poolSize, s.src, poolOpts...)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		pool:      pool,
		length:    s.length,
		table:     table,
		overshoot: s.overshoot,
		observer:  s.observer,
	}
	if s.locking {
		g.mu = &sync.Mutex{}
	}
	return g, nil
}

// Generate returns an identifier with the Generator's length and alphabet.
func (g *Generator) Generate() (string, error) {
	return g.run(g.length, g.table)
}

// GenerateWith returns an identifier of the given length over chars.
func (g *Generator) GenerateWith(length int, chars string) (string, error) {
	table, err := resolve(length, chars)
	if err != nil {
		return "", err
	}
	return g.run(length, table)
}

// CallOption overrides a Generator default for a single call of the
// function returned by Func.
type CallOption func(*call)

type call struct {
	length int
	chars  string
	custom bool
}

// Length sets the identifier length for one call. Values below 1 are
// rejected, never replaced by the default.
func Length(n int) CallOption {
	return func(c *call) {
		c.length = n
		c.custom = true
	}
}

// Charset sets the alphabet for one call. An empty alphabet is rejected.
func Charset(chars string) CallOption {
	return func(c *call) {
		c.chars = chars
		c.custom = true
	}
}

// Func returns the Generator as a plain function. Omitted options fall back
// to the Generator's length and alphabet.
//
//	gen := g.Func()
//	id, err := gen()                              // defaults
//	id, err = gen(uniqid.Length(8), uniqid.Charset("ACGT"))
func (g *Generator) Func() func(opts ...CallOption) (string, error) {
	return func(opts ...CallOption) (string, error) {
		c := call{length: g.length, chars: g.table.Chars}
		for _, opt := range opts {
			opt(&c)
		}
		if !c.custom {
			return g.Generate()
		}
		return g.GenerateWith(c.length, c.chars)
	}
}

// PoolSize returns the capacity of the Generator's pool in bytes
func (g *Generator) PoolSize() int {
	return g.pool.Capacity()
}

func (g *Generator) run(length int, table charset.Table) (string, error) {
	if g.mu != nil {
		g.mu.Lock()
		defer g.mu.Unlock()
	}

	id, rejected, err := sample(length, table, g.pool, g.overshoot)
	if rejected > 0 && g.observer != nil {
		g.observer.Rejected(rejected)
	}
	return id, err
}
