// Package storage provides the only storage this service has: an isolated
// per-request working directory that is created fresh and torn down,
// contents included, when the request ends.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Workspace struct {
	ID  string
	Dir string
}

// NewWorkspace creates a uuid-named directory under the OS temp root.
// Requests never share a workspace, so artifact identifiers only need to be
// unique within one request.
func NewWorkspace() (*Workspace, error) {
	id := uuid.NewString()
	dir := filepath.Join(os.TempDir(), "scan2doc-"+id)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkspaceInit, err)
	}
	return &Workspace{ID: id, Dir: dir}, nil
}

// Cleanup removes the directory and everything rendered into it. Safe to
// defer unconditionally.
func (w *Workspace) Cleanup() {
	if w == nil || w.Dir == "" {
		return
	}
	_ = os.RemoveAll(w.Dir)
}
