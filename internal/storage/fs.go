package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/folio/internal/apperr"
)

// tempSuffix marks in-flight writes. Listing only considers .json files, so
// a leftover temp file is never mistaken for an entity.
const tempSuffix = ".tmp"

// tempPattern matches the names WriteAtomic gives its temp files.
const tempPattern = "*.json.*" + tempSuffix

// FS performs file operations confined to a root directory. All writes go
// through WriteAtomic.
type FS struct {
	root string // absolute path to workspace directory
}

// NewFS creates a provider rooted at root. The directory does not need to
// exist yet.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute root path.
func (f *FS) Root() string { return f.root }

// safePath resolves a relative path against the root and rejects any
// result that escapes it.
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", apperr.Storage("resolve", rel, errors.New("absolute paths not allowed"))
	}
	abs := filepath.Join(f.root, cleaned)
	inside, err := filepath.Rel(f.root, abs)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(os.PathSeparator)) {
		return "", apperr.Storage("resolve", rel, errors.New("path escapes workspace root"))
	}
	return abs, nil
}

// Read returns the bytes of the file at rel. A missing file yields an
// error matching fs.ErrNotExist.
func (f *FS) Read(rel string) ([]byte, error) {
	abs, err := f.safePath(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, apperr.Storage("read", rel, err)
	}
	return data, nil
}

// WriteAtomic replaces the file at rel: temp sibling, fsync, rename, then
// a best-effort fsync of the directory. The parent directory must exist.
// Readers see either the previous content or the new content, never a mix.
func (f *FS) WriteAtomic(rel string, content []byte) error {
	abs, err := f.safePath(rel)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	tmp, err := os.CreateTemp(dir, filepath.Base(abs)+".*"+tempSuffix)
	if err != nil {
		return apperr.Storage("create temp", rel, err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return apperr.Storage("write temp", rel, err)
	}
	if err := tmp.Sync(); err != nil {
		return apperr.Storage("fsync", rel, err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.Storage("close temp", rel, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return apperr.Storage("rename", rel, err)
	}
	success = true
	_ = syncDir(dir)
	return nil
}

// WriteJSON encodes v as indented JSON and writes it atomically.
func (f *FS) WriteJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperr.Storage("encode", rel, err)
	}
	return f.WriteAtomic(rel, append(data, '\n'))
}

// ReadJSON reads the file at rel into dst.
func (f *FS) ReadJSON(rel string, dst any) error {
	data, err := f.Read(rel)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperr.Storage("decode", rel, err)
	}
	return nil
}

// MkdirAll creates rel and any missing parents.
func (f *FS) MkdirAll(rel string) error {
	abs, err := f.safePath(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return apperr.Storage("mkdir", rel, err)
	}
	return nil
}

// ReadDir lists the entries of the directory rel.
func (f *FS) ReadDir(rel string) ([]fs.DirEntry, error) {
	abs, err := f.safePath(rel)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, apperr.Storage("list", rel, err)
	}
	return entries, nil
}

// Remove deletes the file at rel. A missing file is not an error.
func (f *FS) Remove(rel string) error {
	abs, err := f.safePath(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Storage("delete", rel, err)
	}
	return nil
}

// RemoveAll deletes rel and everything below it. A missing path is not an error.
func (f *FS) RemoveAll(rel string) error {
	abs, err := f.safePath(rel)
	if err != nil {
		return err
	}
	if abs == f.root {
		return apperr.Storage("delete", rel, errors.New("refusing to remove workspace root"))
	}
	if err := os.RemoveAll(abs); err != nil {
		return apperr.Storage("delete", rel, err)
	}
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
