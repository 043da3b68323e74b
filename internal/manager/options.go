// Package manager orchestrates identity assignment, timestamps and partial
// updates on top of the storage repositories.
package manager

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// IDGenerator hands out fresh entity ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Clock returns the current time.
type Clock func() time.Time

// UTCNow is the default clock. Converting to UTC also drops the monotonic
// reading, so stored and reloaded timestamps compare equal.
func UTCNow() time.Time { return time.Now().UTC() }

// Option configures a manager.
type Option func(*deps)

type deps struct {
	ids    IDGenerator
	now    Clock
	logger *slog.Logger
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *deps) { d.ids = g }
}

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(d *deps) { d.now = c }
}

// WithLogger sets the logger used for mutation traces.
func WithLogger(l *slog.Logger) Option {
	return func(d *deps) { d.logger = l }
}

func newDeps(opts []Option) deps {
	d := deps{ids: UUIDGenerator{}, now: UTCNow, logger: slog.Default()}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
