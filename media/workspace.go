package media

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is a job-scoped temporary directory for intermediate waveforms.
// Per-turn segment files get unique names inside it, so concurrent workers
// never alias each other's output.
type Workspace struct {
	dir string
}

// NewWorkspace creates a fresh temporary directory under base.
// If base is empty the system temp directory is used.
func NewWorkspace(base string) (*Workspace, error) {
	dir, err := os.MkdirTemp(base, "meetscribe-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string { return w.dir }

// Path returns the absolute path for a file name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// SegmentPath returns the path for the extracted waveform of turn idx.
func (w *Workspace) SegmentPath(idx int) string {
	return w.Path(fmt.Sprintf("segment_%d.wav", idx))
}

// Close removes the workspace directory and everything in it.
func (w *Workspace) Close() error {
	if w.dir == "" {
		return nil
	}
	err := os.RemoveAll(w.dir)
	w.dir = ""
	return err
}
