package manager

import (
	"log/slog"
	"slices"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
)

// ScratchUpdate lists the fields to change. Nil pointers and unset
// optionals leave the stored value untouched.
type ScratchUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
	Source  Optional[string]
}

// ScratchManager creates and edits scratches.
type ScratchManager struct {
	repo storage.ScratchRepository
	deps
}

// NewScratchManager creates a scratch manager over repo.
func NewScratchManager(repo storage.ScratchRepository, opts ...Option) *ScratchManager {
	return &ScratchManager{repo: repo, deps: newDeps(opts)}
}

// Create stores a new scratch with a fresh id and identical created and
// modified timestamps.
func (m *ScratchManager) Create(title, content string, tags []string, source *string) (models.Scratch, error) {
	now := m.now()
	s := models.Scratch{
		ID:         m.ids.NewID(),
		Title:      title,
		Content:    content,
		CreatedAt:  now,
		ModifiedAt: now,
		Tags:       nonNilSlice(slices.Clone(tags)),
		Source:     copyPtr(source),
	}
	if err := m.repo.Save(s); err != nil {
		return models.Scratch{}, err
	}
	m.logger.Debug("scratch created", slog.String("id", s.ID))
	return s, nil
}

// Update applies the supplied fields to the stored scratch and refreshes
// its modified timestamp. A failed save leaves the stored scratch as it was.
func (m *ScratchManager) Update(id string, u ScratchUpdate) (models.Scratch, error) {
	s, err := m.repo.Load(id)
	if err != nil {
		return models.Scratch{}, err
	}
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.Content != nil {
		s.Content = *u.Content
	}
	if u.Tags != nil {
		s.Tags = nonNilSlice(slices.Clone(*u.Tags))
	}
	s.Source = u.Source.Apply(s.Source)
	s.ModifiedAt = m.now()

	if err := m.repo.Save(s); err != nil {
		return models.Scratch{}, err
	}
	m.logger.Debug("scratch updated", slog.String("id", s.ID))
	return s, nil
}

// Load returns the scratch with the given id.
func (m *ScratchManager) Load(id string) (models.Scratch, error) {
	return m.repo.Load(id)
}

// List returns all scratches.
func (m *ScratchManager) List() ([]models.Scratch, error) {
	return m.repo.List()
}

// Delete removes the scratch. Unknown ids are not an error.
func (m *ScratchManager) Delete(id string) error {
	if err := m.repo.Delete(id); err != nil {
		return err
	}
	m.logger.Debug("scratch deleted", slog.String("id", id))
	return nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
