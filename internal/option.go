package internal

import (
	"io"

	"github.com/starford/folio/internal/manager"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	logOutput  io.Writer
	managerOps []manager.Option
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogOutput redirects the JSON log stream. The MCP command logs to
// stderr because stdout carries the protocol.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}

// WithManagerOptions passes id generator, clock or logger overrides to every manager.
func WithManagerOptions(opts ...manager.Option) Option {
	return func(a *application) {
		a.managerOps = append(a.managerOps, opts...)
	}
}
