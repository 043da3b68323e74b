package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	ws, err := NewWorkspace(root)
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	for _, dir := range []string{ws.ScratchesDir(), ws.ProjectsDir(), ws.TemplatesDir()} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("%s should not exist yet", dir)
		}
	}

	if err := ws.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	// Idempotent.
	if err := ws.EnsureDirs(); err != nil {
		t.Fatalf("second EnsureDirs: %v", err)
	}
	for _, dir := range []string{ws.ScratchesDir(), ws.ProjectsDir(), ws.TemplatesDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", dir, err)
		}
	}
}

func TestEnsureDirsRootIsFile(t *testing.T) {
	f, err := os.CreateTemp("", "folio-test-*")
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	defer os.Remove(f.Name())

	ws, err := NewWorkspace(f.Name())
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	if err := ws.EnsureDirs(); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestSweepTemp(t *testing.T) {
	ws := tempWorkspace(t)
	stale := filepath.Join(ws.ScratchesDir(), "a.json.123"+tempSuffix)
	keep := filepath.Join(ws.ScratchesDir(), "a.json")
	_ = os.WriteFile(stale, []byte(`{"id":`), 0o644)
	_ = os.WriteFile(keep, []byte(`{}`), 0o644)
	_ = os.MkdirAll(filepath.Join(ws.ProjectsDir(), "p"), 0o755)
	_ = os.WriteFile(filepath.Join(ws.ProjectsDir(), "p", "project.json.9"+tempSuffix), []byte("{"), 0o644)
	notes := filepath.Join(ws.ProjectsDir(), "p", "notes"+tempSuffix)
	_ = os.WriteFile(notes, []byte("user file"), 0o644)
	draft := filepath.Join(ws.Root(), "draft.md"+tempSuffix)
	_ = os.WriteFile(draft, []byte("user file"), 0o644)

	removed, err := ws.SweepTemp()
	if err != nil {
		t.Fatalf("SweepTemp: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("removed = %v, want 2 entries", removed)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale temp file survived")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("entity file removed: %v", err)
	}
	for _, p := range []string{notes, draft} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("unrelated .tmp file %s removed: %v", filepath.Base(p), err)
		}
	}
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"", ".", "..", "a/b", `a\b`} {
		if validID(id) == nil {
			t.Errorf("validID(%q) should fail", id)
		}
	}
	for _, id := range []string{"a", "3f2c-uuid", "my.note"} {
		if err := validID(id); err != nil {
			t.Errorf("validID(%q): %v", id, err)
		}
	}
}
