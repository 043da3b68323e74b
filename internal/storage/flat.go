package storage

import (
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/starford/folio/internal/apperr"
)

// flatStore keeps one JSON file per entity directly inside dir.
type flatStore[T any] struct {
	ws     *Workspace
	dir    string
	kind   string
	idOf   func(T) string
	logger *slog.Logger
}

func (s *flatStore[T]) rel(id string) (string, error) {
	if err := validID(id); err != nil {
		return "", apperr.Storage("resolve", s.kind, err)
	}
	return path.Join(s.dir, id+".json"), nil
}

func (s *flatStore[T]) save(v T) error {
	rel, err := s.rel(s.idOf(v))
	if err != nil {
		return err
	}
	return s.ws.fs.WriteJSON(rel, v)
}

func (s *flatStore[T]) load(id string) (T, error) {
	var v T
	rel, err := s.rel(id)
	if err != nil {
		return v, err
	}
	if err := s.ws.fs.ReadJSON(rel, &v); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return v, apperr.NotFound(s.kind, id)
		}
		return v, err
	}
	return v, nil
}

// list decodes every .json file in the directory. Unreadable or corrupt
// files are logged and skipped.
func (s *flatStore[T]) list() ([]T, error) {
	entries, err := s.ws.fs.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rel := path.Join(s.dir, e.Name())
		var v T
		if err := s.ws.fs.ReadJSON(rel, &v); err != nil {
			s.logger.Warn("storage: skipping unreadable entry",
				slog.String("kind", s.kind),
				slog.String("path", rel),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *flatStore[T]) delete(id string) error {
	rel, err := s.rel(id)
	if err != nil {
		return err
	}
	return s.ws.fs.Remove(rel)
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
