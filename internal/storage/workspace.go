package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Subdirectory names under the workspace root, one per entity kind.
const (
	ScratchesDir = "scratches"
	ProjectsDir  = "projects"
	TemplatesDir = "templates"
)

// Workspace resolves the on-disk layout:
//
//	<root>/scratches/<id>.json
//	<root>/projects/<id>/project.json
//	<root>/templates/<id>.json
//
// Repositories share one Workspace; it holds no mutable state.
type Workspace struct {
	fs *FS
}

// NewWorkspace returns a workspace rooted at root. Nothing is created
// until EnsureDirs is called.
func NewWorkspace(root string) (*Workspace, error) {
	f, err := NewFS(root)
	if err != nil {
		return nil, err
	}
	return &Workspace{fs: f}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string { return w.fs.Root() }

// FS returns the rooted file provider.
func (w *Workspace) FS() *FS { return w.fs }

// ScratchesDir returns the absolute scratches directory.
func (w *Workspace) ScratchesDir() string { return filepath.Join(w.Root(), ScratchesDir) }

// ProjectsDir returns the absolute projects directory.
func (w *Workspace) ProjectsDir() string { return filepath.Join(w.Root(), ProjectsDir) }

// TemplatesDir returns the absolute templates directory.
func (w *Workspace) TemplatesDir() string { return filepath.Join(w.Root(), TemplatesDir) }

// EnsureDirs creates the root and the three kind directories if absent.
// It is idempotent and meant to run once at startup.
func (w *Workspace) EnsureDirs() error {
	if info, err := os.Stat(w.Root()); err == nil && !info.IsDir() {
		return fmt.Errorf("storage: workspace root is not a directory: %s", w.Root())
	}
	for _, dir := range []string{ScratchesDir, ProjectsDir, TemplatesDir} {
		if err := w.fs.MkdirAll(dir); err != nil {
			return err
		}
	}
	return nil
}

// SweepTemp removes temp files left behind by writes that were interrupted
// before their rename. It returns the relative paths removed.
func (w *Workspace) SweepTemp() ([]string, error) {
	var removed []string
	err := filepath.WalkDir(w.Root(), func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(tempPattern, d.Name()); !ok {
			return nil
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		rel, _ := filepath.Rel(w.Root(), p)
		removed = append(removed, rel)
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("storage: sweep temp files: %w", err)
	}
	return removed, nil
}

// validID rejects ids that cannot be used as a single path element.
func validID(id string) error {
	switch {
	case id == "":
		return errors.New("empty id")
	case id == "." || id == "..":
		return fmt.Errorf("invalid id %q", id)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("invalid id %q (contains path separator)", id)
	}
	return nil
}
