package transfer

import (
	"fmt"
	"slices"
	"time"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// ConversionError reports a transfer value that cannot be turned into an entity.
type ConversionError struct {
	Field string
	Msg   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// Is lets errors.Is match apperr.ErrConversion.
func (e *ConversionError) Is(target error) bool { return target == apperr.ErrConversion }

// FormatTime renders t as RFC 3339 in UTC, keeping sub-second precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime parses an RFC 3339 timestamp and normalizes it to UTC.
func ParseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ConversionError{Field: field, Msg: err.Error()}
	}
	return t.UTC(), nil
}

// FromScratch converts a scratch entity.
func FromScratch(s models.Scratch) ScratchDTO {
	return ScratchDTO{
		ID:         s.ID,
		Title:      s.Title,
		Content:    s.Content,
		CreatedAt:  FormatTime(s.CreatedAt),
		ModifiedAt: FormatTime(s.ModifiedAt),
		Tags:       slices.Clone(s.Tags),
		Source:     cloneString(s.Source),
	}
}

// ToScratch converts back to an entity.
func (d ScratchDTO) ToScratch() (models.Scratch, error) {
	created, err := ParseTime("created_at", d.CreatedAt)
	if err != nil {
		return models.Scratch{}, err
	}
	modified, err := ParseTime("modified_at", d.ModifiedAt)
	if err != nil {
		return models.Scratch{}, err
	}
	return models.Scratch{
		ID:         d.ID,
		Title:      d.Title,
		Content:    d.Content,
		CreatedAt:  created,
		ModifiedAt: modified,
		Tags:       slices.Clone(d.Tags),
		Source:     cloneString(d.Source),
	}, nil
}

// FromTemplate converts a template entity.
func FromTemplate(t models.Template) TemplateDTO {
	return TemplateDTO{ID: t.ID, Name: t.Name, Content: t.Content}
}

// ToTemplate converts back to an entity. It cannot fail today but keeps
// the same shape as the other conversions.
func (d TemplateDTO) ToTemplate() (models.Template, error) {
	return models.Template{ID: d.ID, Name: d.Name, Content: d.Content}, nil
}

// FromProject converts a project entity including its whole outline.
func FromProject(p models.Project) ProjectDTO {
	return ProjectDTO{
		ID:      p.ID,
		Title:   p.Title,
		Outline: FromOutlineNode(p.Outline),
		Settings: ProjectSettingsDTO{
			TemplateID: p.Settings.TemplateID,
			OutputDir:  p.Settings.OutputDir,
		},
		CreatedAt:  FormatTime(p.CreatedAt),
		ModifiedAt: FormatTime(p.ModifiedAt),
	}
}

// ToProject converts back to an entity. A failure anywhere in the outline
// fails the whole project.
func (d ProjectDTO) ToProject() (models.Project, error) {
	outline, err := d.Outline.ToOutlineNode()
	if err != nil {
		return models.Project{}, err
	}
	created, err := ParseTime("created_at", d.CreatedAt)
	if err != nil {
		return models.Project{}, err
	}
	modified, err := ParseTime("modified_at", d.ModifiedAt)
	if err != nil {
		return models.Project{}, err
	}
	return models.Project{
		ID:      d.ID,
		Title:   d.Title,
		Outline: outline,
		Settings: models.ProjectSettings{
			TemplateID: d.Settings.TemplateID,
			OutputDir:  d.Settings.OutputDir,
		},
		CreatedAt:  created,
		ModifiedAt: modified,
	}, nil
}

// FromOutlineNode converts a node and its descendants, preserving order.
func FromOutlineNode(n models.OutlineNode) OutlineNodeDTO {
	out := OutlineNodeDTO{
		ID:      n.ID,
		Title:   n.Title,
		Content: cloneString(n.Content),
	}
	if n.Children != nil {
		out.Children = make([]OutlineNodeDTO, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = FromOutlineNode(child)
		}
	}
	if n.Scratches != nil {
		out.Scratches = make([]ScratchLinkDTO, len(n.Scratches))
		for i, link := range n.Scratches {
			out.Scratches[i] = FromScratchLink(link)
		}
	}
	return out
}

// ToOutlineNode converts a node and its descendants depth-first. No partial
// tree is returned on failure.
func (d OutlineNodeDTO) ToOutlineNode() (models.OutlineNode, error) {
	out := models.OutlineNode{
		ID:      d.ID,
		Title:   d.Title,
		Content: cloneString(d.Content),
	}
	if d.Children != nil {
		out.Children = make([]models.OutlineNode, len(d.Children))
		for i, child := range d.Children {
			node, err := child.ToOutlineNode()
			if err != nil {
				return models.OutlineNode{}, err
			}
			out.Children[i] = node
		}
	}
	if d.Scratches != nil {
		out.Scratches = make([]models.ScratchLink, len(d.Scratches))
		for i, link := range d.Scratches {
			l, err := link.ToScratchLink()
			if err != nil {
				return models.OutlineNode{}, err
			}
			out.Scratches[i] = l
		}
	}
	return out, nil
}

// FromScratchLink converts a link entity.
func FromScratchLink(l models.ScratchLink) ScratchLinkDTO {
	return ScratchLinkDTO{
		ScratchID: l.ScratchID,
		Mode:      FromIntegrationMode(l.Mode),
		Insertion: InsertionFlagsDTO(l.Insertion),
	}
}

// ToScratchLink converts back to an entity.
func (d ScratchLinkDTO) ToScratchLink() (models.ScratchLink, error) {
	return models.ScratchLink{
		ScratchID: d.ScratchID,
		Mode:      ToIntegrationMode(d.Mode),
		Insertion: models.InsertionFlags(d.Insertion),
	}, nil
}

// FromIntegrationMode returns the string tag of m.
func FromIntegrationMode(m models.IntegrationMode) string {
	if m == models.IntegrationLink {
		return "Link"
	}
	return "Include"
}

// ToIntegrationMode maps a string tag to a mode. Unrecognized tags decode
// as Include.
func ToIntegrationMode(s string) models.IntegrationMode {
	if s == "Link" {
		return models.IntegrationLink
	}
	return models.IntegrationInclude
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
