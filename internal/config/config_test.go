package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardolat/uniqid/charset"
)

func TestParse_ValidConfig(t *testing.T) {
	yamlData := `
pool_size: 4096
length: 16
charset: base62
batch_overshoot: 4
format: uniqid
count: 100
`

	cfg, err := Parse([]byte(yamlData))
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.GetPoolSize())
	assert.Equal(t, 16, cfg.GetLength())
	assert.Equal(t, charset.Base62, cfg.GetCharset())
	assert.Equal(t, 4, cfg.GetBatchOvershoot())
	assert.Equal(t, FormatUniqid, cfg.GetFormat())
	assert.Equal(t, 100, cfg.GetCount())
}

func TestParse_DefaultValues(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)

	// Check defaults
	assert.Equal(t, 32*1024, cfg.GetPoolSize())
	assert.Equal(t, 24, cfg.GetLength())
	assert.Equal(t, charset.Base36, cfg.GetCharset())
	assert.Equal(t, 8, cfg.GetBatchOvershoot())
	assert.Equal(t, FormatUniqid, cfg.GetFormat())
	assert.Equal(t, 1, cfg.GetCount())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 24, cfg.GetLength())
}

func TestParse_NanoIDDefaults(t *testing.T) {
	cfg, err := Parse([]byte("format: nanoid\n"))
	require.NoError(t, err)

	assert.Equal(t, FormatNanoID, cfg.GetFormat())
	assert.Equal(t, 21, cfg.GetLength())
	assert.Equal(t, charset.URLSafe, cfg.GetCharset())
}

func TestParse_ExplicitZeroOvershoot(t *testing.T) {
	cfg, err := Parse([]byte("batch_overshoot: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.GetBatchOvershoot())
}

func TestGetCharset(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "", want: charset.Base36},
		{value: "base36", want: charset.Base36},
		{value: "BASE62", want: charset.Base62},
		{value: "urlsafe", want: charset.URLSafe},
		{value: "ACGT", want: "ACGT"},
	}

	for _, tt := range tests {
		cfg := Config{Charset: tt.value}
		assert.Equal(t, tt.want, cfg.GetCharset(), "charset %q", tt.value)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "zero pool size", yaml: "pool_size: 0", wantErr: "pool_size must be positive"},
		{name: "negative pool size", yaml: "pool_size: -1", wantErr: "pool_size must be positive"},
		{name: "zero length", yaml: "length: 0", wantErr: "length must be positive"},
		{name: "negative overshoot", yaml: "batch_overshoot: -2", wantErr: "batch_overshoot cannot be negative"},
		{name: "zero count", yaml: "count: 0", wantErr: "count must be positive"},
		{name: "unknown format", yaml: "format: uuid", wantErr: "invalid format"},
		{name: "non ascii charset", yaml: "charset: ñandú", wantErr: "invalid charset"},
		{name: "charset too long", yaml: "charset: " + strings.Repeat("a", 300), wantErr: "invalid charset"},
		{name: "nanoid charset too long", yaml: "format: nanoid\ncharset: " + strings.Repeat("a", 256), wantErr: "nanoid charset cannot exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("not: valid: yaml: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("length: 10\ncharset: base62\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.GetLength())
	assert.Equal(t, charset.Base62, cfg.GetCharset())
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
