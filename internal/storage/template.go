package storage

import (
	"log/slog"

	"github.com/starford/folio/internal/models"
)

// TemplateStore implements TemplateRepository as templates/<id>.json.
type TemplateStore struct {
	files flatStore[models.Template]
}

// NewTemplateStore creates a template repository on ws.
func NewTemplateStore(ws *Workspace, logger *slog.Logger) *TemplateStore {
	return &TemplateStore{files: flatStore[models.Template]{
		ws:     ws,
		dir:    TemplatesDir,
		kind:   "template",
		idOf:   func(t models.Template) string { return t.ID },
		logger: orDefault(logger),
	}}
}

// Save writes the template, replacing any stored version.
func (r *TemplateStore) Save(t models.Template) error { return r.files.save(t) }

// Load reads the template with the given id.
func (r *TemplateStore) Load(id string) (models.Template, error) { return r.files.load(id) }

// List returns all readable templates.
func (r *TemplateStore) List() ([]models.Template, error) { return r.files.list() }

// Delete removes the template file if present.
func (r *TemplateStore) Delete(id string) error { return r.files.delete(id) }
