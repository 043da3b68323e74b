package manager

import (
	"log/slog"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
)

// ProjectManager creates projects and persists whole project aggregates.
type ProjectManager struct {
	repo storage.ProjectRepository
	deps
}

// NewProjectManager creates a project manager over repo.
func NewProjectManager(repo storage.ProjectRepository, opts ...Option) *ProjectManager {
	return &ProjectManager{repo: repo, deps: newDeps(opts)}
}

// Create stores a new project with an empty root outline. The project and
// its root node each get a fresh id.
func (m *ProjectManager) Create(title, templateID, outputDir string) (models.Project, error) {
	now := m.now()
	p := models.Project{
		ID:      m.ids.NewID(),
		Title:   title,
		Outline: models.NewRootOutline(m.ids.NewID()),
		Settings: models.ProjectSettings{
			TemplateID: templateID,
			OutputDir:  outputDir,
		},
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := m.repo.Save(p); err != nil {
		return models.Project{}, err
	}
	m.logger.Debug("project created", slog.String("id", p.ID))
	return p, nil
}

// Save replaces the stored project with p as given, outline included.
func (m *ProjectManager) Save(p models.Project) error {
	if err := m.repo.Save(p); err != nil {
		return err
	}
	m.logger.Debug("project saved", slog.String("id", p.ID), slog.Int("nodes", p.Outline.Count()))
	return nil
}

// Load returns the project with the given id.
func (m *ProjectManager) Load(id string) (models.Project, error) {
	return m.repo.Load(id)
}

// List returns all loadable projects.
func (m *ProjectManager) List() ([]models.Project, error) {
	return m.repo.List()
}

// Delete removes the project and its directory.
func (m *ProjectManager) Delete(id string) error {
	if err := m.repo.Delete(id); err != nil {
		return err
	}
	m.logger.Debug("project deleted", slog.String("id", id))
	return nil
}
