package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/folio/internal/apperr"
)

func tempFS(t *testing.T) *FS {
	t.Helper()
	f, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return f
}

func TestWriteAndRead(t *testing.T) {
	f := tempFS(t)
	content := []byte(`{"id":"a"}`)
	if err := f.WriteAtomic("a.json", content); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}
	got, err := f.Read("a.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteRequiresParentDir(t *testing.T) {
	f := tempFS(t)
	err := f.WriteAtomic("missing/a.json", []byte("x"))
	if err == nil {
		t.Fatal("expected error when parent directory is absent")
	}
	if !errors.Is(err, apperr.ErrStorage) {
		t.Errorf("err = %v, want storage kind", err)
	}
}

func TestReadMissingIsNotExist(t *testing.T) {
	f := tempFS(t)
	_, err := f.Read("nope.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	f := tempFS(t)
	if err := f.Remove("nope.json"); err != nil {
		t.Errorf("Remove: %v", err)
	}
	if err := f.RemoveAll("nope"); err != nil {
		t.Errorf("RemoveAll: %v", err)
	}
}

func TestRemoveAllRefusesRoot(t *testing.T) {
	f := tempFS(t)
	if err := f.RemoveAll(""); err == nil {
		t.Error("expected error removing the root")
	}
	if _, err := os.Stat(f.Root()); err != nil {
		t.Errorf("root should survive: %v", err)
	}
}

func TestTraversalBlocked(t *testing.T) {
	f := tempFS(t)
	cases := []string{
		"../../etc/passwd",
		"../outside.json",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := f.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := f.WriteAtomic(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestSafePathFilesystemRoot(t *testing.T) {
	f, err := NewFS(string(os.PathSeparator))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	got, err := f.safePath(filepath.Join("tmp", "x.json"))
	if err != nil {
		t.Fatalf("safePath under filesystem root: %v", err)
	}
	if want := filepath.Join(string(os.PathSeparator), "tmp", "x.json"); got != want {
		t.Errorf("safePath = %q, want %q", got, want)
	}

	nested := tempFS(t)
	if _, err := nested.safePath(filepath.Join("a", "..", "..", "x.json")); err == nil {
		t.Error("expected error for path climbing out through a subdirectory")
	}
	if _, err := nested.safePath(filepath.Join("a", "..", "b.json")); err != nil {
		t.Errorf("path staying inside root rejected: %v", err)
	}
}

func TestAtomicWriteNoLeftovers(t *testing.T) {
	f := tempFS(t)
	_ = f.WriteAtomic("atomic.json", []byte("original"))
	if err := f.WriteAtomic("atomic.json", []byte("updated")); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}
	got, _ := f.Read("atomic.json")
	if string(got) != "updated" {
		t.Errorf("expected updated content, got %q", got)
	}
	matches, _ := filepath.Glob(filepath.Join(f.Root(), "*"+tempSuffix))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestFailedRenameKeepsTargetAndCleansTemp(t *testing.T) {
	f := tempFS(t)
	// A non-empty directory at the target path makes the rename fail.
	if err := os.MkdirAll(filepath.Join(f.Root(), "busy.json", "inner"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := f.WriteAtomic("busy.json", []byte("new")); err == nil {
		t.Fatal("expected rename failure")
	}
	if info, err := os.Stat(filepath.Join(f.Root(), "busy.json")); err != nil || !info.IsDir() {
		t.Errorf("target should be untouched: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(f.Root(), "*"+tempSuffix))
	if len(matches) != 0 {
		t.Errorf("temp file not cleaned up: %v", matches)
	}
}

func TestWriteJSONIsIndented(t *testing.T) {
	f := tempFS(t)
	if err := f.WriteJSON("v.json", map[string]string{"id": "a"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, _ := f.Read("v.json")
	if string(got) != "{\n  \"id\": \"a\"\n}\n" {
		t.Errorf("json = %q", got)
	}
}
