// Package storage persists folio entities as JSON files under a workspace
// root, using write-temp-then-rename for every write.
package storage

import "github.com/starford/folio/internal/models"

// ScratchRepository stores scratches.
type ScratchRepository interface {
	// Save upserts the scratch keyed by its ID.
	Save(s models.Scratch) error
	// Load returns the scratch or an error matching apperr.ErrNotFound.
	Load(id string) (models.Scratch, error)
	// List returns every stored scratch in directory order.
	List() ([]models.Scratch, error)
	// Delete removes the scratch. Deleting an unknown id succeeds.
	Delete(id string) error
}

// ProjectRepository stores projects together with their outline.
type ProjectRepository interface {
	Save(p models.Project) error
	Load(id string) (models.Project, error)
	List() ([]models.Project, error)
	Delete(id string) error
}

// TemplateRepository stores templates.
type TemplateRepository interface {
	Save(t models.Template) error
	Load(id string) (models.Template, error)
	List() ([]models.Template, error)
	Delete(id string) error
}

// Verify the file-system implementations satisfy the contracts at compile time.
var (
	_ ScratchRepository  = (*ScratchStore)(nil)
	_ ProjectRepository  = (*ProjectStore)(nil)
	_ TemplateRepository = (*TemplateStore)(nil)
)
