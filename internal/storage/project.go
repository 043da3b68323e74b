package storage

import (
	"errors"
	"io/fs"
	"log/slog"
	"path"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// ProjectFile is the name of the document inside each project directory.
const ProjectFile = "project.json"

// ProjectStore implements ProjectRepository as projects/<id>/project.json.
// The per-project directory leaves room for co-located assets.
type ProjectStore struct {
	ws     *Workspace
	logger *slog.Logger
}

// NewProjectStore creates a project repository on ws.
func NewProjectStore(ws *Workspace, logger *slog.Logger) *ProjectStore {
	return &ProjectStore{ws: ws, logger: orDefault(logger)}
}

func (r *ProjectStore) dir(id string) (string, error) {
	if err := validID(id); err != nil {
		return "", apperr.Storage("resolve", "project", err)
	}
	return path.Join(ProjectsDir, id), nil
}

// Save creates the project directory if needed, then writes project.json.
func (r *ProjectStore) Save(p models.Project) error {
	dir, err := r.dir(p.ID)
	if err != nil {
		return err
	}
	if err := r.ws.fs.MkdirAll(dir); err != nil {
		return err
	}
	return r.ws.fs.WriteJSON(path.Join(dir, ProjectFile), p)
}

// Load reads the project with the given id.
func (r *ProjectStore) Load(id string) (models.Project, error) {
	dir, err := r.dir(id)
	if err != nil {
		return models.Project{}, err
	}
	var p models.Project
	if err := r.ws.fs.ReadJSON(path.Join(dir, ProjectFile), &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Project{}, apperr.NotFound("project", id)
		}
		return models.Project{}, err
	}
	return p, nil
}

// List loads every project subdirectory. Directories that fail to load
// are treated as debris: logged and skipped.
func (r *ProjectStore) List() ([]models.Project, error) {
	entries, err := r.ws.fs.ReadDir(ProjectsDir)
	if err != nil {
		return nil, err
	}
	out := make([]models.Project, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := r.Load(e.Name())
		if err != nil {
			r.logger.Warn("storage: skipping unloadable project",
				slog.String("dir", e.Name()),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete removes the project directory and everything in it.
func (r *ProjectStore) Delete(id string) error {
	dir, err := r.dir(id)
	if err != nil {
		return err
	}
	return r.ws.fs.RemoveAll(dir)
}
