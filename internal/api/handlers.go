package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/commands"
	"github.com/starford/folio/internal/transfer"
)

// Handler holds API route handlers.
type Handler struct {
	cmds *commands.Commands
}

// NewHandler creates a new Handler.
func NewHandler(cmds *commands.Commands) *Handler {
	return &Handler{cmds: cmds}
}

// ListScratches handles GET /api/scratches.
//
//	@Summary		List all scratches
//	@Tags			scratches
//	@Produce		json
//	@Success		200	{object}	ScratchListResponse
//	@Security		BearerAuth
//	@Router			/scratches [get]
func (h *Handler) ListScratches(w http.ResponseWriter, r *http.Request) {
	items, err := h.cmds.ListScratches()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScratchListResponse{Scratches: items, Total: len(items)})
}

// CreateScratch handles POST /api/scratches.
//
//	@Summary		Create a scratch
//	@Tags			scratches
//	@Accept			json
//	@Produce		json
//	@Param			body	body		commands.CreateScratchRequest	true	"Scratch to create"
//	@Success		201		{object}	transfer.ScratchDTO
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/scratches [post]
func (h *Handler) CreateScratch(w http.ResponseWriter, r *http.Request) {
	var req commands.CreateScratchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s, err := h.cmds.CreateScratch(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// GetScratch handles GET /api/scratches/{id}.
//
//	@Summary		Get a scratch
//	@Tags			scratches
//	@Produce		json
//	@Param			id	path		string	true	"Scratch id"
//	@Success		200	{object}	transfer.ScratchDTO
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/scratches/{id} [get]
func (h *Handler) GetScratch(w http.ResponseWriter, r *http.Request) {
	s, err := h.cmds.LoadScratch(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// UpdateScratch handles PATCH /api/scratches/{id}. Absent fields are kept;
// "source": null clears the source.
//
//	@Summary		Partially update a scratch
//	@Tags			scratches
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Scratch id"
//	@Param			body	body		commands.UpdateScratchRequest	true	"Fields to change"
//	@Success		200		{object}	transfer.ScratchDTO
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/scratches/{id} [patch]
func (h *Handler) UpdateScratch(w http.ResponseWriter, r *http.Request) {
	var req commands.UpdateScratchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	s, err := h.cmds.UpdateScratch(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// DeleteScratch handles DELETE /api/scratches/{id}.
//
//	@Summary		Delete a scratch
//	@Tags			scratches
//	@Param			id	path	string	true	"Scratch id"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/scratches/{id} [delete]
func (h *Handler) DeleteScratch(w http.ResponseWriter, r *http.Request) {
	if err := h.cmds.DeleteScratch(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProjects handles GET /api/projects.
//
//	@Summary		List all projects
//	@Tags			projects
//	@Produce		json
//	@Success		200	{object}	ProjectListResponse
//	@Security		BearerAuth
//	@Router			/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	items, err := h.cmds.ListProjects()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectListResponse{Projects: items, Total: len(items)})
}

// CreateProject handles POST /api/projects.
//
//	@Summary		Create a project with an empty outline
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			body	body		commands.CreateProjectRequest	true	"Project to create"
//	@Success		201		{object}	transfer.ProjectDTO
//	@Security		BearerAuth
//	@Router			/projects [post]
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req commands.CreateProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.cmds.CreateProject(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("ETag", etag(p))
	writeJSON(w, http.StatusCreated, p)
}

// GetProject handles GET /api/projects/{id}. The ETag header carries the
// checksum used for optimistic concurrency on save.
//
//	@Summary		Get a project with its outline
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	transfer.ProjectDTO
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.cmds.LoadProject(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("ETag", etag(p))
	writeJSON(w, http.StatusOK, p)
}

// SaveProject handles PUT /api/projects/{id}, replacing the whole project.
//
//	@Summary		Replace a project
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string				true	"Project id"
//	@Param			If-Match	header		string				false	"ETag from a previous read"
//	@Param			body		body		transfer.ProjectDTO	true	"Full project"
//	@Success		200			{object}	transfer.ProjectDTO
//	@Failure		400			{object}	errResponse
//	@Failure		412			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{id} [put]
func (h *Handler) SaveProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p transfer.ProjectDTO
	if !decodeBody(w, r, &p) {
		return
	}
	if p.ID == "" {
		p.ID = id
	}
	if p.ID != id {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "project id does not match path", Kind: apperr.KindInvalid})
		return
	}

	if ifMatch := r.Header.Get("If-Match"); ifMatch != "" {
		current, err := h.cmds.LoadProject(id)
		if err != nil {
			var cerr *commands.Error
			if errors.As(err, &cerr) && cerr.Kind == apperr.KindNotFound {
				writeJSON(w, http.StatusPreconditionFailed, errorBody("project does not exist"))
				return
			}
			writeError(w, r, err)
			return
		}
		if !checksum.MatchETag(ifMatch, etag(current)) {
			writeJSON(w, http.StatusPreconditionFailed, errorBody("project changed since it was read"))
			return
		}
	}

	if err := h.cmds.SaveProject(p); err != nil {
		writeError(w, r, err)
		return
	}
	// Respond with the stored form; modes and timestamps are normalized on save.
	saved, err := h.cmds.LoadProject(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("ETag", etag(saved))
	writeJSON(w, http.StatusOK, saved)
}

// DeleteProject handles DELETE /api/projects/{id}.
//
//	@Summary		Delete a project
//	@Tags			projects
//	@Param			id	path	string	true	"Project id"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/projects/{id} [delete]
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.cmds.DeleteProject(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTemplates handles GET /api/templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	items, err := h.cmds.ListTemplates()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TemplateListResponse{Templates: items, Total: len(items)})
}

// CreateTemplate handles POST /api/templates.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req commands.CreateTemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := h.cmds.CreateTemplate(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// GetTemplate handles GET /api/templates/{id}.
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.cmds.LoadTemplate(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// SaveTemplate handles PUT /api/templates/{id}.
func (h *Handler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var t transfer.TemplateDTO
	if !decodeBody(w, r, &t) {
		return
	}
	if t.ID == "" {
		t.ID = id
	}
	if t.ID != id {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "template id does not match path", Kind: apperr.KindInvalid})
		return
	}
	if err := h.cmds.SaveTemplate(t); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTemplate handles DELETE /api/templates/{id}.
func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.cmds.DeleteTemplate(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// etag fingerprints a project's JSON form.
func etag(p transfer.ProjectDTO) string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return checksum.ETag(data)
}
