// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/commands"
	"github.com/starford/folio/internal/manager"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/parser"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/transfer"
	"github.com/starford/folio/internal/watch"
)

// Version is reported by the MCP server.
const Version = "0.1.0"

// runtime is what every entry point needs: a logger, the workspace and the
// command set over it.
type runtime struct {
	cfg    *Config
	logger *slog.Logger
	ws     *storage.Workspace
	cmds   *commands.Commands
}

func setup(opts []Option) (*runtime, error) {
	app := &application{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("workspace_path", cfg.Workspace.Path),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	ws, err := storage.NewWorkspace(cfg.Workspace.Path)
	if err != nil {
		return nil, fmt.Errorf("init workspace: %w", err)
	}
	if err := ws.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("init workspace: %w", err)
	}

	removed, err := ws.SweepTemp()
	if err != nil {
		logger.Warn("temp sweep failed", slog.String("error", err.Error()))
	}
	if len(removed) > 0 {
		logger.Info("removed interrupted writes", slog.Int("count", len(removed)))
	}

	mopts := append([]manager.Option{manager.WithLogger(logger)}, app.managerOps...)
	cmds := commands.New(
		manager.NewScratchManager(storage.NewScratchStore(ws, logger), mopts...),
		manager.NewProjectManager(storage.NewProjectStore(ws, logger), mopts...),
		manager.NewTemplateManager(storage.NewTemplateStore(ws, logger), mopts...),
	)

	return &runtime{cfg: cfg, logger: logger, ws: ws, cmds: cmds}, nil
}

// Run starts the HTTP server, the change stream and the workspace watcher,
// and blocks until ctx is cancelled or a shutdown signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	cfg, logger := rt.cfg, rt.logger

	broker := sse.NewBroker(cfg.Events.Throttle, logger)
	defer broker.Close()

	apiRouter := api.NewRouter(rt.cmds, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := os.Stat(rt.ws.ScratchesDir()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"workspace unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	var handler http.Handler = r
	if len(cfg.CORS.AllowedOrigins) > 0 {
		handler = api.CORS(cfg.CORS.AllowedOrigins, r)
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watcher feeds the change stream, whoever wrote to the workspace.
	g.Go(func() error {
		err := watch.Watch(gCtx, rt.ws, logger, func(ev watch.Event) {
			broker.PublishChange(sse.Change{Kind: ev.Kind, Op: sse.Op(ev.Op), ID: ev.ID})
		})
		if err != nil {
			logger.Error("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// Close the broker first so open event streams end and Shutdown can finish.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the workspace tools over stdio until the client disconnects.
func RunMCP(_ context.Context, opts ...Option) error {
	opts = append([]Option{WithLogOutput(os.Stderr)}, opts...)
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	rt.logger.Info("MCP server starting on stdio")
	return mcpserver.New(rt.cmds, Version).ServeStdio()
}

// Import creates one scratch per Markdown file. Files that cannot be read
// are reported in the returned error; the rest are still imported.
func Import(ctx context.Context, files []string, out io.Writer, opts ...Option) ([]transfer.ScratchDTO, error) {
	rt, err := setup(opts)
	if err != nil {
		return nil, err
	}

	var (
		created []transfer.ScratchDTO
		errs    []error
	)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		d := parser.Parse(data)
		if d.Title == "" {
			d.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		s, err := rt.cmds.CreateScratch(commands.CreateScratchRequest{
			Title:   d.Title,
			Content: d.Content,
			Tags:    d.Tags,
			Source:  d.Source,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		rt.logger.Info("imported", slog.String("file", path), slog.String("id", s.ID))
		if out != nil {
			fmt.Fprintf(out, "%s\t%s\n", s.ID, s.Title)
		}
		created = append(created, s)
	}
	return created, errors.Join(errs...)
}
