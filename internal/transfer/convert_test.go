package transfer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

func strPtr(s string) *string { return &s }

var (
	created  = time.Date(2024, 5, 1, 9, 30, 0, 123456789, time.UTC)
	modified = time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC)
)

// deepProject builds a project whose outline is four levels deep and mixes
// Include and Link scratches.
func deepProject() models.Project {
	leaf := models.OutlineNode{
		ID:    "n-1-1-1",
		Title: "Leaf",
		Scratches: []models.ScratchLink{
			{ScratchID: "s3", Mode: models.IntegrationLink, Insertion: models.InsertionFlags{Footnote: true, Reference: true}},
		},
	}
	root := models.NewRootOutline("root")
	root.Children = []models.OutlineNode{
		{
			ID:      "n-1",
			Title:   "Part One",
			Content: strPtr("intro"),
			Children: []models.OutlineNode{
				{ID: "n-1-1", Title: "Chapter", Children: []models.OutlineNode{leaf}},
				{ID: "n-1-2", Title: "Chapter 2", Children: []models.OutlineNode{}, Scratches: []models.ScratchLink{}},
			},
			Scratches: []models.ScratchLink{
				{ScratchID: "s1", Mode: models.IntegrationInclude, Insertion: models.InsertionFlags{Body: true}},
				{ScratchID: "s2", Mode: models.IntegrationLink, Insertion: models.InsertionFlags{Appendix: true, Body: true}},
			},
		},
		{ID: "n-2", Title: "Part Two"},
	}
	return models.Project{
		ID:         "p1",
		Title:      "My Book",
		Outline:    root,
		Settings:   models.ProjectSettings{TemplateID: "tmpl-1", OutputDir: "/out"},
		CreatedAt:  created,
		ModifiedAt: modified,
	}
}

func TestScratchRoundTrip(t *testing.T) {
	s := models.Scratch{
		ID:         "a",
		Title:      "Title",
		Content:    "Body",
		CreatedAt:  created,
		ModifiedAt: modified,
		Tags:       []string{"one", "two"},
		Source:     strPtr("https://example.org"),
	}
	dto := FromScratch(s)
	assert.Equal(t, "2024-05-01T09:30:00.123456789Z", dto.CreatedAt)
	assert.Equal(t, "2024-05-02T18:00:00Z", dto.ModifiedAt)

	back, err := dto.ToScratch()
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestScratchConversionDoesNotAlias(t *testing.T) {
	s := models.Scratch{ID: "a", Tags: []string{"x"}, Source: strPtr("src"), CreatedAt: created, ModifiedAt: created}
	dto := FromScratch(s)
	dto.Tags[0] = "changed"
	*dto.Source = "changed"
	assert.Equal(t, "x", s.Tags[0])
	assert.Equal(t, "src", *s.Source)
}

func TestScratchMalformedTimestamp(t *testing.T) {
	dto := FromScratch(models.Scratch{ID: "a", CreatedAt: created, ModifiedAt: modified})
	dto.ModifiedAt = "yesterday"

	_, err := dto.ToScratch()
	require.Error(t, err)

	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "modified_at", convErr.Field)
	assert.Contains(t, convErr.Msg, "yesterday")
	assert.True(t, errors.Is(err, apperr.ErrConversion))
}

func TestParseTimeNormalizesToUTC(t *testing.T) {
	got, err := ParseTime("created_at", "2024-05-01T11:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), got)
}

func TestProjectTreeFidelity(t *testing.T) {
	p := deepProject()
	dto := FromProject(p)

	require.Len(t, dto.Outline.Children, 2)
	assert.Equal(t, "Link", dto.Outline.Children[0].Scratches[1].Mode)
	assert.Equal(t, "Include", dto.Outline.Children[0].Scratches[0].Mode)
	assert.Equal(t, "n-1-1-1", dto.Outline.Children[0].Children[0].Children[0].ID)

	back, err := dto.ToProject()
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestUnknownModeDecodesAsInclude(t *testing.T) {
	dto := FromProject(deepProject())
	dto.Outline.Children[0].Children[0].Children[0].Scratches[0].Mode = "Transclude"

	back, err := dto.ToProject()
	require.NoError(t, err)

	leaf := back.Outline.Find("n-1-1-1")
	require.NotNil(t, leaf)
	assert.Equal(t, models.IntegrationInclude, leaf.Scratches[0].Mode)

	// Everything else is untouched.
	want := deepProject()
	want.Outline.Find("n-1-1-1").Scratches[0].Mode = models.IntegrationInclude
	assert.Equal(t, want, back)
}

func TestDeepConversionFailureFailsWholeProject(t *testing.T) {
	dto := FromProject(deepProject())
	dto.CreatedAt = "not a time"

	p, err := dto.ToProject()
	require.Error(t, err)
	assert.Equal(t, models.Project{}, p)
}

func TestTemplateRoundTrip(t *testing.T) {
	tmpl := models.Template{ID: "t1", Name: "Article", Content: "\\documentclass{article}"}
	back, err := FromTemplate(tmpl).ToTemplate()
	require.NoError(t, err)
	assert.Equal(t, tmpl, back)
}

func TestIntegrationModeTags(t *testing.T) {
	assert.Equal(t, "Include", FromIntegrationMode(models.IntegrationInclude))
	assert.Equal(t, "Link", FromIntegrationMode(models.IntegrationLink))
	assert.Equal(t, models.IntegrationLink, ToIntegrationMode("Link"))
	assert.Equal(t, models.IntegrationInclude, ToIntegrationMode("Include"))
	assert.Equal(t, models.IntegrationInclude, ToIntegrationMode("link"))
	assert.Equal(t, models.IntegrationInclude, ToIntegrationMode(""))
}
