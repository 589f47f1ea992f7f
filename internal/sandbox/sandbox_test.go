package sandbox

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The runner only cares about interpreter + script + output file, so tests
// drive it with sh instead of python to stay hermetic.
func newShellRunner(timeout time.Duration) *Runner {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewRunner("sh", timeout, log)
}

func TestRender_Success(t *testing.T) {
	r := newShellRunner(10 * time.Second)
	workDir := t.TempDir()

	// The hardcoded output name gets redirected into the work dir before
	// execution; the script just has to write to it.
	path, err := r.Render(context.Background(), "echo ok > generated_diagram.png", "scan_0", workDir)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Contains(t, path, "diagram_scan_0.png")
}

func TestRender_NonZeroExit(t *testing.T) {
	r := newShellRunner(10 * time.Second)

	path, err := r.Render(context.Background(), "exit 3", "scan_0", t.TempDir())
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Empty(t, path)
}

func TestRender_ExitZeroWithoutOutput(t *testing.T) {
	r := newShellRunner(10 * time.Second)

	// Exit status alone must not count as success.
	path, err := r.Render(context.Background(), "true", "scan_0", t.TempDir())
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Empty(t, path)
}

func TestRender_TimeoutEnforced(t *testing.T) {
	r := newShellRunner(2 * time.Second)

	start := time.Now()
	path, err := r.Render(context.Background(), "sleep 60", "scan_0", t.TempDir())
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Empty(t, path)
	assert.Less(t, elapsed, 10*time.Second, "process must be killed at the deadline, not awaited")
}

func TestRender_OutputRedirectedPerArtifact(t *testing.T) {
	r := newShellRunner(10 * time.Second)
	workDir := t.TempDir()

	first, err := r.Render(context.Background(), "echo a > generated_diagram.png", "scan_0", workDir)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), "echo b > generated_diagram.png", "scan_1", workDir)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
