// Package testutil provides shared helpers for beamctl tests: a
// thread-safe output buffer, rig fixture writing, and a harness running a
// full CLI invocation in-process.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beamkit/beamctl/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteRig writes rig fixture files into a fresh temp dir and returns the
// dir. Keys are relative paths, so subdirectories come for free.
func WriteRig(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// Result holds the outcome of one in-process CLI invocation.
type Result struct {
	Out string
	Log string
	Err error
}

// RunCLI runs a single beamctl invocation against in-memory writers.
// Command output lands in Out, logs and usage text in Log.
func RunCLI(t *testing.T, args ...string) *Result {
	t.Helper()
	out := &SafeBuffer{}
	errOut := &SafeBuffer{}
	err := app.New(out, errOut).Run(context.Background(), args)
	return &Result{Out: out.String(), Log: errOut.String(), Err: err}
}
