package entropy

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("getrandom: function not implemented")
}

// resetProbe restores the platform source and probe state after a test
func resetProbe(t *testing.T, r io.Reader) {
	t.Helper()

	old := platform
	platform = r
	probeOnce = sync.Once{}
	probeErr = nil

	t.Cleanup(func() {
		platform = old
		probeOnce = sync.Once{}
		probeErr = nil
	})
}

func TestCrypto_Available(t *testing.T) {
	r, err := Crypto()
	require.NoError(t, err)
	require.NotNil(t, r)

	buf := make([]byte, 32)
	n, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	assert.Equal(t, 32, n)
}

func TestCrypto_Unavailable(t *testing.T) {
	resetProbe(t, brokenReader{})

	r, err := Crypto()
	require.Error(t, err)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "function not implemented")

	// The failure is sticky
	_, err = Crypto()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCrypto_NilPlatform(t *testing.T) {
	resetProbe(t, nil)

	_, err := Crypto()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFunc_Read(t *testing.T) {
	var asked []int
	f := Func(func(n int) ([]byte, error) {
		asked = append(asked, n)
		out := make([]byte, n)
		for i := range out {
			out[i] = byte(i + 1)
		}
		return out, nil
	})

	buf := make([]byte, 4)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
	assert.Equal(t, []int{4}, asked)
}

func TestFunc_ShortAndEmpty(t *testing.T) {
	calls := 0
	f := Func(func(n int) ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte{9, 9}, nil
		}
		return nil, nil
	})

	buf := make([]byte, 4)
	n, err := io.ReadFull(f, buf)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFunc_Error(t *testing.T) {
	errSource := errors.New("source failed")
	f := Func(func(int) ([]byte, error) { return nil, errSource })

	n, err := f.Read(make([]byte, 8))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, errSource)
}

func TestFunc_EmptyBuffer(t *testing.T) {
	called := false
	f := Func(func(int) ([]byte, error) {
		called = true
		return nil, nil
	})

	n, err := f.Read(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, called)
}
