package cli

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout returns what fn printed to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestPrintDiagnostics(t *testing.T) {
	out := captureStdout(t, func() {
		printDiagnostics([]string{"side-conflict", "100%-wide"})
	})
	assert.Contains(t, out, "2 kind(s)")
	assert.Contains(t, out, "side-conflict")
	assert.Contains(t, out, "100%-wide")
	assert.NotContains(t, out, "MISSING")

	assert.Empty(t, captureStdout(t, func() { printDiagnostics(nil) }))
}
