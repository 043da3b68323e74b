// Package testutil provides shared test helpers for setting up workspaces and command sets.
package testutil

import (
	"testing"

	"github.com/starford/folio/internal/commands"
	"github.com/starford/folio/internal/manager"
	"github.com/starford/folio/internal/storage"
)

// TestWorkspace creates a temporary workspace with its kind directories in place.
func TestWorkspace(t testing.TB) *storage.Workspace {
	t.Helper()
	ws, err := storage.NewWorkspace(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	return ws
}

// TestCommands wires filesystem repositories, managers and commands over a
// fresh temporary workspace.
func TestCommands(t testing.TB, opts ...manager.Option) (*commands.Commands, *storage.Workspace) {
	t.Helper()
	ws := TestWorkspace(t)
	cmds := commands.New(
		manager.NewScratchManager(storage.NewScratchStore(ws, nil), opts...),
		manager.NewProjectManager(storage.NewProjectStore(ws, nil), opts...),
		manager.NewTemplateManager(storage.NewTemplateStore(ws, nil), opts...),
	)
	return cmds, ws
}
