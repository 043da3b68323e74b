// Package commands is the boundary consumed by presentation layers. Every
// command takes and returns transfer values; failures are *Error values
// carrying a human-readable message and a coarse kind.
package commands

import (
	"fmt"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/manager"
	"github.com/starford/folio/internal/transfer"
)

// Error is the only error type returned by Commands.
type Error struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"error"`
}

func (e *Error) Error() string { return e.Message }

// fail renders err as "Failed to <op>: <cause>", keeping its kind.
func fail(op string, err error) error {
	return &Error{Kind: apperr.KindOf(err), Message: fmt.Sprintf("Failed to %s: %v", op, err)}
}

func invalid(what string, err error) error {
	return &Error{Kind: apperr.KindInvalid, Message: fmt.Sprintf("Invalid %s data: %v", what, err)}
}

// Commands dispatches boundary calls to the managers.
type Commands struct {
	scratches *manager.ScratchManager
	projects  *manager.ProjectManager
	templates *manager.TemplateManager
}

// New creates the command set.
func New(scratches *manager.ScratchManager, projects *manager.ProjectManager, templates *manager.TemplateManager) *Commands {
	return &Commands{scratches: scratches, projects: projects, templates: templates}
}

// CreateScratchRequest is the input of CreateScratch.
type CreateScratchRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Source  *string  `json:"source"`
}

// UpdateScratchRequest is the input of UpdateScratch. Omitted fields are
// left unchanged; "source": null clears the source.
type UpdateScratchRequest struct {
	ID      string                   `json:"id"`
	Title   *string                  `json:"title,omitempty"`
	Content *string                  `json:"content,omitempty"`
	Tags    *[]string                `json:"tags,omitempty"`
	Source  manager.Optional[string] `json:"source"`
}

// CreateProjectRequest is the input of CreateProject.
type CreateProjectRequest struct {
	Title      string `json:"title"`
	TemplateID string `json:"template_id"`
	OutputDir  string `json:"output_dir"`
}

// CreateTemplateRequest is the input of CreateTemplate.
type CreateTemplateRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// CreateScratch creates a scratch.
func (c *Commands) CreateScratch(req CreateScratchRequest) (transfer.ScratchDTO, error) {
	s, err := c.scratches.Create(req.Title, req.Content, req.Tags, req.Source)
	if err != nil {
		return transfer.ScratchDTO{}, fail("create scratch", err)
	}
	return transfer.FromScratch(s), nil
}

// UpdateScratch applies a partial update.
func (c *Commands) UpdateScratch(req UpdateScratchRequest) (transfer.ScratchDTO, error) {
	s, err := c.scratches.Update(req.ID, manager.ScratchUpdate{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Source:  req.Source,
	})
	if err != nil {
		return transfer.ScratchDTO{}, fail("update scratch", err)
	}
	return transfer.FromScratch(s), nil
}

// LoadScratch returns one scratch.
func (c *Commands) LoadScratch(id string) (transfer.ScratchDTO, error) {
	s, err := c.scratches.Load(id)
	if err != nil {
		return transfer.ScratchDTO{}, fail("load scratch", err)
	}
	return transfer.FromScratch(s), nil
}

// ListScratches returns every scratch.
func (c *Commands) ListScratches() ([]transfer.ScratchDTO, error) {
	items, err := c.scratches.List()
	if err != nil {
		return nil, fail("list scratches", err)
	}
	out := make([]transfer.ScratchDTO, len(items))
	for i, s := range items {
		out[i] = transfer.FromScratch(s)
	}
	return out, nil
}

// DeleteScratch removes a scratch.
func (c *Commands) DeleteScratch(id string) error {
	if err := c.scratches.Delete(id); err != nil {
		return fail("delete scratch", err)
	}
	return nil
}

// CreateProject creates a project with an empty outline.
func (c *Commands) CreateProject(req CreateProjectRequest) (transfer.ProjectDTO, error) {
	p, err := c.projects.Create(req.Title, req.TemplateID, req.OutputDir)
	if err != nil {
		return transfer.ProjectDTO{}, fail("create project", err)
	}
	return transfer.FromProject(p), nil
}

// LoadProject returns one project with its outline.
func (c *Commands) LoadProject(id string) (transfer.ProjectDTO, error) {
	p, err := c.projects.Load(id)
	if err != nil {
		return transfer.ProjectDTO{}, fail("load project", err)
	}
	return transfer.FromProject(p), nil
}

// SaveProject validates and converts dto, then replaces the stored project.
func (c *Commands) SaveProject(dto transfer.ProjectDTO) error {
	if err := dto.Validate(); err != nil {
		return invalid("project", err)
	}
	p, err := dto.ToProject()
	if err != nil {
		return invalid("project", err)
	}
	if err := c.projects.Save(p); err != nil {
		return fail("save project", err)
	}
	return nil
}

// ListProjects returns every loadable project.
func (c *Commands) ListProjects() ([]transfer.ProjectDTO, error) {
	items, err := c.projects.List()
	if err != nil {
		return nil, fail("list projects", err)
	}
	out := make([]transfer.ProjectDTO, len(items))
	for i, p := range items {
		out[i] = transfer.FromProject(p)
	}
	return out, nil
}

// DeleteProject removes a project.
func (c *Commands) DeleteProject(id string) error {
	if err := c.projects.Delete(id); err != nil {
		return fail("delete project", err)
	}
	return nil
}

// CreateTemplate creates a template.
func (c *Commands) CreateTemplate(req CreateTemplateRequest) (transfer.TemplateDTO, error) {
	t, err := c.templates.Create(req.Name, req.Content)
	if err != nil {
		return transfer.TemplateDTO{}, fail("create template", err)
	}
	return transfer.FromTemplate(t), nil
}

// LoadTemplate returns one template.
func (c *Commands) LoadTemplate(id string) (transfer.TemplateDTO, error) {
	t, err := c.templates.Load(id)
	if err != nil {
		return transfer.TemplateDTO{}, fail("load template", err)
	}
	return transfer.FromTemplate(t), nil
}

// SaveTemplate validates dto and replaces the stored template.
func (c *Commands) SaveTemplate(dto transfer.TemplateDTO) error {
	if err := dto.Validate(); err != nil {
		return invalid("template", err)
	}
	t, err := dto.ToTemplate()
	if err != nil {
		return invalid("template", err)
	}
	if err := c.templates.Save(t); err != nil {
		return fail("save template", err)
	}
	return nil
}

// ListTemplates returns every template.
func (c *Commands) ListTemplates() ([]transfer.TemplateDTO, error) {
	items, err := c.templates.List()
	if err != nil {
		return nil, fail("list templates", err)
	}
	out := make([]transfer.TemplateDTO, len(items))
	for i, t := range items {
		out[i] = transfer.FromTemplate(t)
	}
	return out, nil
}

// DeleteTemplate removes a template.
func (c *Commands) DeleteTemplate(id string) error {
	if err := c.templates.Delete(id); err != nil {
		return fail("delete template", err)
	}
	return nil
}
