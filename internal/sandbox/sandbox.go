// Package sandbox executes untrusted diagram-recreation scripts in an
// isolated working directory under a hard wall-clock timeout.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrRenderFailed covers every way a diagram can fail to render: script
// error, timeout, or missing output. Callers degrade to a placeholder; the
// failure is never terminal for the surrounding conversion.
var ErrRenderFailed = errors.New("diagram render failed")

// outputName is the filename the generation prompt instructs the model to
// save to; it gets redirected to a per-artifact path before execution.
const outputName = "generated_diagram.png"

// Renderer executes diagram source and returns the path of the produced
// image. Implementations must be safe for sequential reuse across requests.
type Renderer interface {
	Render(ctx context.Context, code, artifactID, workDir string) (string, error)
}

// Runner renders diagrams by running the script as a subprocess of the
// configured interpreter. It is the default Renderer.
type Runner struct {
	bin     string
	timeout time.Duration
	log     *logrus.Logger
}

func NewRunner(bin string, timeout time.Duration, log *logrus.Logger) *Runner {
	if bin == "" {
		bin = "python3"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{bin: bin, timeout: timeout, log: log}
}

// Render writes the rewritten script into workDir and executes it. Success
// requires both a zero exit status and the output file existing afterwards:
// a script may exit cleanly without saving, and a killed process may leave a
// partial file behind.
func (r *Runner) Render(ctx context.Context, code, artifactID, workDir string) (string, error) {
	scriptPath := filepath.Join(workDir, "diagram_"+artifactID+".py")
	imagePath := filepath.Join(workDir, "diagram_"+artifactID+".png")

	rewritten := strings.ReplaceAll(code, outputName, filepath.ToSlash(imagePath))
	rewritten = Rewrite(rewritten)

	if err := os.WriteFile(scriptPath, []byte(rewritten), 0o644); err != nil {
		return "", fmt.Errorf("%w: write script: %v", ErrRenderFailed, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.bin, scriptPath)
	cmd.Dir = workDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		r.log.Warnf("diagram %s killed after %s", artifactID, r.timeout)
		return "", fmt.Errorf("%w: timed out after %s", ErrRenderFailed, r.timeout)
	}
	if err != nil {
		r.log.Errorf("diagram %s failed: %v: %s", artifactID, err, firstLine(stderr.String()))
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if _, err := os.Stat(imagePath); err != nil {
		r.log.Errorf("diagram %s exited 0 but produced no output", artifactID)
		return "", fmt.Errorf("%w: no output file", ErrRenderFailed)
	}
	return imagePath, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
