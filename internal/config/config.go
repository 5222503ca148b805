// Package config handles YAML configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eduardolat/uniqid"
	"github.com/eduardolat/uniqid/charset"
	"github.com/eduardolat/uniqid/internal/nanoid"
)

const (
	// DefaultCharset is the name of the default alphabet
	DefaultCharset = "base36"

	// DefaultCount is how many identifiers are generated per run
	DefaultCount = 1

	// FormatUniqid is the pooled rejection-sampling format
	FormatUniqid = "uniqid"
	// FormatNanoID is the NanoID format
	FormatNanoID = "nanoid"
)

// namedCharsets maps the names accepted in configuration to alphabets
var namedCharsets = map[string]string{
	"base36":  charset.Base36,
	"base62":  charset.Base62,
	"urlsafe": charset.URLSafe,
}

// Config represents the generator configuration
type Config struct {
	PoolSize       *int   `yaml:"pool_size"`
	Length         *int   `yaml:"length"`
	Charset        string `yaml:"charset"`
	BatchOvershoot *int   `yaml:"batch_overshoot"`
	Format         string `yaml:"format"`
	Count          *int   `yaml:"count"`
}

// Default returns a configuration with every value at its default
func Default() *Config {
	return &Config{}
}

// GetPoolSize returns the pool size in bytes (default: 32 KiB)
func (c Config) GetPoolSize() int {
	if c.PoolSize == nil {
		return uniqid.DefaultPoolSize
	}
	return *c.PoolSize
}

// GetLength returns the identifier length (default: 24, or 21 for nanoid)
func (c Config) GetLength() int {
	if c.Length == nil {
		if c.GetFormat() == FormatNanoID {
			return nanoid.DefaultLength
		}
		return uniqid.DefaultLength
	}
	return *c.Length
}

// GetCharset returns the alphabet, resolving named alphabets. An empty value
// selects base36, or the URL-safe alphabet for nanoid.
func (c Config) GetCharset() string {
	name := c.Charset
	if name == "" {
		if c.GetFormat() == FormatNanoID {
			return charset.URLSafe
		}
		name = DefaultCharset
	}
	if chars, ok := namedCharsets[strings.ToLower(name)]; ok {
		return chars
	}
	return name
}

// GetBatchOvershoot returns the extra bytes requested per sampling round (default: 8)
func (c Config) GetBatchOvershoot() int {
	if c.BatchOvershoot == nil {
		return uniqid.DefaultOvershoot
	}
	return *c.BatchOvershoot
}

// GetFormat returns the output format (default: uniqid)
func (c Config) GetFormat() string {
	if c.Format == "" {
		return FormatUniqid
	}
	return strings.ToLower(c.Format)
}

// GetCount returns how many identifiers to generate (default: 1)
func (c Config) GetCount() int {
	if c.Count == nil {
		return DefaultCount
	}
	return *c.Count
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML configuration data
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	format := c.GetFormat()
	if format != FormatUniqid && format != FormatNanoID {
		return fmt.Errorf("config: invalid format %q (supported: %s, %s)", c.Format, FormatUniqid, FormatNanoID)
	}

	if c.GetPoolSize() <= 0 {
		return errors.New("config: pool_size must be positive")
	}

	if c.GetLength() <= 0 {
		return errors.New("config: length must be positive")
	}

	if c.GetBatchOvershoot() < 0 {
		return errors.New("config: batch_overshoot cannot be negative")
	}

	if c.GetCount() <= 0 {
		return errors.New("config: count must be positive")
	}

	chars := c.GetCharset()
	if _, err := charset.Compute(chars); err != nil {
		return fmt.Errorf("config: invalid charset: %w", err)
	}
	if format == FormatNanoID && len(chars) > nanoid.MaxAlphabet {
		return fmt.Errorf("config: nanoid charset cannot exceed %d characters", nanoid.MaxAlphabet)
	}

	return nil
}
