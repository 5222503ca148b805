package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runUniqid executes the uniqid binary with the given arguments.
// Returns stdout, stderr and the exit code.
func runUniqid(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := exec.Command(env.binaryPath, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err := cmd.Run()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return out.String(), errOut.String(), exitError.ExitCode()
		}
		t.Fatalf("Failed to run uniqid: %v\nStderr: %s", err, errOut.String())
	}

	return out.String(), errOut.String(), 0
}

// createConfig writes a config file into a per-test temp dir
func createConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "uniqid.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	return configPath
}

// splitIDs returns the non-empty lines of the output
func splitIDs(output string) []string {
	var ids []string
	for _, line := range strings.Split(output, "\n") {
		if line != "" {
			ids = append(ids, line)
		}
	}
	return ids
}

// assertIDs checks count, length and alphabet of every identifier
func assertIDs(t *testing.T, ids []string, count, length int, alphabet string) {
	t.Helper()

	require.Len(t, ids, count, "unexpected number of identifiers")
	for _, id := range ids {
		assert.Len(t, id, length, "identifier %q has wrong length", id)
		for _, c := range id {
			assert.True(t, strings.ContainsRune(alphabet, c),
				"identifier %q contains %q outside the alphabet", id, c)
		}
	}
}

// assertUnique fails if any identifier repeats
func assertUnique(t *testing.T, ids []string) {
	t.Helper()

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate identifier: %s", id)
		seen[id] = struct{}{}
	}
}

// getFilePermissions returns the permission bits of a file as an octal string
func getFilePermissions(t *testing.T, path string) string {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err, "Failed to stat file")

	return fmt.Sprintf("%o", info.Mode().Perm())
}
