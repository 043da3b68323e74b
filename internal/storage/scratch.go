package storage

import (
	"log/slog"

	"github.com/starford/folio/internal/models"
)

// ScratchStore implements ScratchRepository as scratches/<id>.json.
type ScratchStore struct {
	files flatStore[models.Scratch]
}

// NewScratchStore creates a scratch repository on ws.
func NewScratchStore(ws *Workspace, logger *slog.Logger) *ScratchStore {
	return &ScratchStore{files: flatStore[models.Scratch]{
		ws:     ws,
		dir:    ScratchesDir,
		kind:   "scratch",
		idOf:   func(s models.Scratch) string { return s.ID },
		logger: orDefault(logger),
	}}
}

// Save writes the scratch, replacing any stored version.
func (r *ScratchStore) Save(s models.Scratch) error { return r.files.save(s) }

// Load reads the scratch with the given id.
func (r *ScratchStore) Load(id string) (models.Scratch, error) { return r.files.load(id) }

// List returns all readable scratches.
func (r *ScratchStore) List() ([]models.Scratch, error) { return r.files.list() }

// Delete removes the scratch file if present.
func (r *ScratchStore) Delete(id string) error { return r.files.delete(id) }
