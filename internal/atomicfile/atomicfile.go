// Package atomicfile replaces files atomically so readers never observe a
// partially written list of identifiers.
package atomicfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/eduardolat/uniqid"
)

const (
	// DefaultMode is the permission mode for written files (0600)
	DefaultMode = 0600
	// TempFilePrefix starts the name of every staging file
	TempFilePrefix = ".uniqid_"
)

// Writer handles atomic file writes
type Writer struct {
	// idGenerator allows for dependency injection in tests
	idGenerator func() (string, error)
	// timeNow allows for dependency injection in tests
	timeNow func() time.Time
}

// New creates a Writer that names its staging files with identifiers from the
// default pooled generator
func New() *Writer {
	return &Writer{
		idGenerator: uniqid.String,
		timeNow:     time.Now,
	}
}

// NewWithDeps creates a new Writer with custom dependencies (for testing)
func NewWithDeps(idGen func() (string, error), timeNow func() time.Time) *Writer {
	return &Writer{
		idGenerator: idGen,
		timeNow:     timeNow,
	}
}

// WriteResult contains information about a write operation
type WriteResult struct {
	// Changed indicates whether the file content was different
	Changed bool
	// Path is the final path of the written file
	Path string
}

// WriteAtomic publishes content at path so that readers see either the old
// list or the new one, never a prefix of it. The bytes are staged in a
// sibling file named with a fresh identifier, flushed to disk, then renamed
// over path. A file that already holds exactly content is left alone.
func (w *Writer) WriteAtomic(path string, content []byte, mode os.FileMode) (*WriteResult, error) {
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, content) {
		return &WriteResult{Changed: false, Path: path}, nil
	}

	staged, err := w.stagingPath(path)
	if err != nil {
		return nil, err
	}
	if err := stage(staged, content, mode); err != nil {
		return nil, err
	}

	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return nil, fmt.Errorf("failed to publish %s: %w", path, err)
	}
	return &WriteResult{Changed: true, Path: path}, nil
}

// stagingPath returns <dir>/.uniqid_<UTC timestamp>_<identifier>. Staging in
// the target's directory keeps the rename on one filesystem.
func (w *Writer) stagingPath(path string) (string, error) {
	id, err := w.idGenerator()
	if err != nil {
		return "", fmt.Errorf("failed to name staging file: %w", err)
	}
	stamp := w.timeNow().UTC().Format("20060102_150405")
	return filepath.Join(filepath.Dir(path), TempFilePrefix+stamp+"_"+id), nil
}

// stage writes content to a file that must not exist yet, with mode applied
// regardless of umask, and syncs it. On failure nothing is left behind.
func stage(name string, content []byte, mode os.FileMode) (err error) {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("failed to open staging file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(name)
		}
	}()

	if err = f.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set mode %04o on staging file: %w", mode, err)
	}
	if _, err = f.Write(content); err != nil {
		return fmt.Errorf("failed to stage identifiers: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to flush staging file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close staging file: %w", err)
	}
	return nil
}
