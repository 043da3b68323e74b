// Package watch reports entity changes in a workspace, whichever process
// made them.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/storage"
)

// Entity kinds reported in events.
const (
	KindScratch  = "scratch"
	KindProject  = "project"
	KindTemplate = "template"
)

// Ops reported in events.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// Event is one observed entity change.
type Event struct {
	Kind string
	Op   string
	ID   string
}

// Callback receives events in the order they were observed.
type Callback func(Event)

// Classify maps a path relative to the workspace root to the entity file it
// represents. Temporary files and anything outside the kind directories
// report ok == false.
func Classify(rel string) (kind, id string, ok bool) {
	rel = filepath.ToSlash(rel)
	if strings.HasSuffix(rel, ".tmp") {
		return "", "", false
	}
	parts := strings.Split(rel, "/")
	switch {
	case len(parts) == 2 && parts[0] == storage.ScratchesDir:
		kind = KindScratch
	case len(parts) == 2 && parts[0] == storage.TemplatesDir:
		kind = KindTemplate
	case len(parts) == 3 && parts[0] == storage.ProjectsDir && parts[2] == storage.ProjectFile:
		return KindProject, parts[1], parts[1] != ""
	default:
		return "", "", false
	}
	id, found := strings.CutSuffix(parts[1], ".json")
	if !found || id == "" {
		return "", "", false
	}
	return kind, id, true
}

// watcher owns the checksum of every entity file it has seen. Only the
// Watch loop touches it.
type watcher struct {
	ws     *storage.Workspace
	logger *slog.Logger
	cb     Callback
	seen   map[string]string
}

// Watch watches the workspace until ctx is cancelled, calling cb for every
// entity created, changed or removed. Writes that leave a file's content
// unchanged are not reported.
//
// Directories created at runtime (new projects) are added to the watch list
// and scanned for files written before the watch was in place.
func Watch(ctx context.Context, ws *storage.Workspace, logger *slog.Logger, cb Callback) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	w := &watcher{ws: ws, logger: logger, cb: cb, seen: make(map[string]string)}

	if err := addDirsRecursive(fw, ws.Root()); err != nil {
		return err
	}
	w.scan(ws.Root(), false)

	logger.Info("watcher: started", slog.String("root", ws.Root()), slog.Int("entities", len(w.seen)))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(fw, ev)

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func (w *watcher) handle(fw *fsnotify.Watcher, ev fsnotify.Event) {
	rel, err := filepath.Rel(w.ws.Root(), ev.Name)
	if err != nil {
		return
	}

	if ev.Op&fsnotify.Create != 0 {
		if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
			if addErr := addDirsRecursive(fw, ev.Name); addErr != nil {
				w.logger.Warn("watcher: add new dir failed",
					slog.String("path", rel),
					slog.String("error", addErr.Error()))
				return
			}
			w.logger.Debug("watcher: watching new dir", slog.String("path", rel))
			w.scan(ev.Name, true)
			return
		}
	}

	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.observe(rel, true)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.forget(rel)
	}
}

// observe records the current checksum of rel and reports a change when
// it differs from the last one seen.
func (w *watcher) observe(rel string, notify bool) {
	kind, id, ok := Classify(rel)
	if !ok {
		return
	}
	data, err := w.ws.FS().Read(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.forget(rel)
			return
		}
		w.logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}

	sum := checksum.Sum(data)
	prev, known := w.seen[rel]
	if known && prev == sum {
		return
	}
	w.seen[rel] = sum
	if !notify {
		return
	}

	op := OpCreated
	if known {
		op = OpUpdated
	}
	w.logger.Debug("watcher: changed", slog.String("kind", kind), slog.String("id", id), slog.String("op", op))
	w.emit(Event{Kind: kind, Op: op, ID: id})
}

func (w *watcher) forget(rel string) {
	if _, known := w.seen[rel]; !known {
		return
	}
	delete(w.seen, rel)
	kind, id, _ := Classify(rel)
	w.logger.Debug("watcher: removed", slog.String("kind", kind), slog.String("id", id))
	w.emit(Event{Kind: kind, Op: OpDeleted, ID: id})
}

func (w *watcher) emit(ev Event) {
	if w.cb != nil {
		w.cb(ev)
	}
}

// scan observes every entity file under dir.
func (w *watcher) scan(dir string, notify bool) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.ws.Root(), path)
		if relErr != nil {
			return nil
		}
		w.observe(rel, notify)
		return nil
	})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
