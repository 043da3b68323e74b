package commands_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/commands"
	"github.com/starford/folio/internal/manager"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/testutil"
	"github.com/starford/folio/internal/transfer"
)

func requireKind(t *testing.T, err error, kind apperr.Kind) *commands.Error {
	t.Helper()
	var cerr *commands.Error
	require.True(t, errors.As(err, &cerr), "want *commands.Error, got %T", err)
	assert.Equal(t, kind, cerr.Kind)
	return cerr
}

func TestScratchLifecycle(t *testing.T) {
	cmds, _ := testutil.TestCommands(t)

	created, err := cmds.CreateScratch(commands.CreateScratchRequest{Title: "Idea", Content: "text", Tags: []string{"a"}})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.ModifiedAt)
	assert.Nil(t, created.Source)

	title := "Better idea"
	updated, err := cmds.UpdateScratch(commands.UpdateScratchRequest{
		ID:     created.ID,
		Title:  &title,
		Source: manager.Some("notebook"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Better idea", updated.Title)
	assert.Equal(t, "text", updated.Content)
	require.NotNil(t, updated.Source)
	assert.Equal(t, "notebook", *updated.Source)

	loaded, err := cmds.LoadScratch(created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, loaded)

	list, err := cmds.ListScratches()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, cmds.DeleteScratch(created.ID))
	require.NoError(t, cmds.DeleteScratch(created.ID))

	_, err = cmds.LoadScratch(created.ID)
	cerr := requireKind(t, err, apperr.KindNotFound)
	assert.True(t, strings.HasPrefix(cerr.Message, "Failed to load scratch: "), cerr.Message)
}

func TestUpdateMissingScratch(t *testing.T) {
	cmds, _ := testutil.TestCommands(t)
	_, err := cmds.UpdateScratch(commands.UpdateScratchRequest{ID: "nope"})
	requireKind(t, err, apperr.KindNotFound)
}

func TestProjectLifecycle(t *testing.T) {
	cmds, ws := testutil.TestCommands(t)

	p, err := cmds.CreateProject(commands.CreateProjectRequest{Title: "Novel", TemplateID: "t1", OutputDir: "out"})
	require.NoError(t, err)
	assert.Equal(t, "Root", p.Outline.Title)
	assert.Empty(t, p.Outline.Children)
	assert.NotEqual(t, p.ID, p.Outline.ID)

	_, err = os.Stat(filepath.Join(ws.ProjectsDir(), p.ID, storage.ProjectFile))
	require.NoError(t, err)

	body := "opening"
	p.Outline.Children = []transfer.OutlineNodeDTO{{
		ID:      "ch1",
		Title:   "Chapter 1",
		Content: &body,
		Scratches: []transfer.ScratchLinkDTO{
			{ScratchID: "s1", Mode: "Link"},
			{ScratchID: "s2", Mode: "Include", Insertion: transfer.InsertionFlagsDTO{Body: true}},
		},
	}}
	require.NoError(t, cmds.SaveProject(p))

	loaded, err := cmds.LoadProject(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	list, err := cmds.ListProjects()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	require.NoError(t, cmds.DeleteProject(p.ID))
	_, err = os.Stat(filepath.Join(ws.ProjectsDir(), p.ID))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveProjectRejectsBadTimestamp(t *testing.T) {
	cmds, _ := testutil.TestCommands(t)
	p, err := cmds.CreateProject(commands.CreateProjectRequest{Title: "Novel"})
	require.NoError(t, err)

	p.ModifiedAt = "yesterday"
	cerr := requireKind(t, cmds.SaveProject(p), apperr.KindInvalid)
	assert.True(t, strings.HasPrefix(cerr.Message, "Invalid project data: "), cerr.Message)

	// Stored state untouched.
	loaded, err := cmds.LoadProject(p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "yesterday", loaded.ModifiedAt)
}

func TestSaveProjectRejectsDuplicateNodeIDs(t *testing.T) {
	cmds, _ := testutil.TestCommands(t)
	p, err := cmds.CreateProject(commands.CreateProjectRequest{Title: "Novel"})
	require.NoError(t, err)

	p.Outline.Children = []transfer.OutlineNodeDTO{{ID: "x", Title: "A"}, {ID: "x", Title: "B"}}
	requireKind(t, cmds.SaveProject(p), apperr.KindInvalid)
}

func TestSaveProjectLenientMode(t *testing.T) {
	cmds, _ := testutil.TestCommands(t)
	p, err := cmds.CreateProject(commands.CreateProjectRequest{Title: "Novel"})
	require.NoError(t, err)

	p.Outline.Scratches = []transfer.ScratchLinkDTO{{ScratchID: "s1", Mode: "Embed"}}
	require.NoError(t, cmds.SaveProject(p))

	loaded, err := cmds.LoadProject(p.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Outline.Scratches, 1)
	assert.Equal(t, "Include", loaded.Outline.Scratches[0].Mode)
}

func TestTemplateLifecycle(t *testing.T) {
	cmds, _ := testutil.TestCommands(t)

	tmpl, err := cmds.CreateTemplate(commands.CreateTemplateRequest{Name: "Essay", Content: "# {{title}}"})
	require.NoError(t, err)

	tmpl.Content = "# {{title}}\n\n{{body}}"
	require.NoError(t, cmds.SaveTemplate(tmpl))

	loaded, err := cmds.LoadTemplate(tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tmpl, loaded)

	requireKind(t, cmds.SaveTemplate(transfer.TemplateDTO{Name: "no id"}), apperr.KindInvalid)

	list, err := cmds.ListTemplates()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, cmds.DeleteTemplate(tmpl.ID))
	_, err = cmds.LoadTemplate(tmpl.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestStorageFailureKind(t *testing.T) {
	cmds, ws := testutil.TestCommands(t)
	require.NoError(t, os.RemoveAll(ws.ScratchesDir()))
	require.NoError(t, os.WriteFile(ws.ScratchesDir(), []byte("x"), 0o644))

	_, err := cmds.CreateScratch(commands.CreateScratchRequest{Title: "x"})
	cerr := requireKind(t, err, apperr.KindStorage)
	assert.True(t, strings.HasPrefix(cerr.Message, "Failed to create scratch: "), cerr.Message)
}
