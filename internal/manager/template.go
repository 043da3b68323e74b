package manager

import (
	"log/slog"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
)

// TemplateManager creates and stores templates.
type TemplateManager struct {
	repo storage.TemplateRepository
	deps
}

// NewTemplateManager creates a template manager over repo.
func NewTemplateManager(repo storage.TemplateRepository, opts ...Option) *TemplateManager {
	return &TemplateManager{repo: repo, deps: newDeps(opts)}
}

// Create stores a new template under a fresh id.
func (m *TemplateManager) Create(name, content string) (models.Template, error) {
	t := models.Template{ID: m.ids.NewID(), Name: name, Content: content}
	if err := m.repo.Save(t); err != nil {
		return models.Template{}, err
	}
	m.logger.Debug("template created", slog.String("id", t.ID))
	return t, nil
}

// Save replaces the stored template.
func (m *TemplateManager) Save(t models.Template) error {
	return m.repo.Save(t)
}

// Load returns the template with the given id.
func (m *TemplateManager) Load(id string) (models.Template, error) {
	return m.repo.Load(id)
}

// List returns every stored template.
func (m *TemplateManager) List() ([]models.Template, error) {
	return m.repo.List()
}

// Delete removes the template. Unknown ids are not an error.
func (m *TemplateManager) Delete(id string) error {
	if err := m.repo.Delete(id); err != nil {
		return err
	}
	m.logger.Debug("template deleted", slog.String("id", id))
	return nil
}
