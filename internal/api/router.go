package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/commands"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(cmds *commands.Commands, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(cmds)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Route("/scratches", func(r chi.Router) {
		r.Get("/", h.ListScratches)
		r.Post("/", h.CreateScratch)
		r.Get("/{id}", h.GetScratch)
		r.Patch("/{id}", h.UpdateScratch)
		r.Delete("/{id}", h.DeleteScratch)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Post("/", h.CreateProject)
		r.Get("/{id}", h.GetProject)
		r.Put("/{id}", h.SaveProject)
		r.Delete("/{id}", h.DeleteProject)
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", h.ListTemplates)
		r.Post("/", h.CreateTemplate)
		r.Get("/{id}", h.GetTemplate)
		r.Put("/{id}", h.SaveTemplate)
		r.Delete("/{id}", h.DeleteTemplate)
	})

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
