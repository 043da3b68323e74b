// Package apperr defines the error taxonomy shared by storage, managers and
// the command boundary.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no persisted entity has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrStorage reports an I/O or serialization failure.
	ErrStorage = errors.New("storage failure")
	// ErrConversion reports a transfer value that cannot become an entity.
	ErrConversion = errors.New("conversion failed")
)

// StorageError describes a failed file-system or encoding operation.
type StorageError struct {
	Op   string // e.g. "read", "write", "decode"
	Path string
	Err  error
}

// Storage wraps err as a StorageError.
func Storage(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrStorage.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NotFound returns an ErrNotFound wrapped with the entity kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// Kind classifies an error for callers that need structured handling.
type Kind string

const (
	KindNotFound Kind = "not_found"
	KindStorage  Kind = "storage"
	KindInvalid  Kind = "invalid"
)

// KindOf returns the Kind of err. Unclassified errors count as storage
// failures since they originate below the manager layer.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConversion):
		return KindInvalid
	default:
		return KindStorage
	}
}
