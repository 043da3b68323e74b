// Package transfer defines the wire-safe mirrors of the entity model used at
// the command boundary, and the conversions between the two.
//
// Transfer values carry timestamps as RFC 3339 strings and integration
// modes as string tags. They never reach the disk.
package transfer

// ScratchDTO mirrors models.Scratch.
type ScratchDTO struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CreatedAt  string   `json:"created_at"`
	ModifiedAt string   `json:"modified_at"`
	Tags       []string `json:"tags"`
	Source     *string  `json:"source"`
}

// TemplateDTO mirrors models.Template.
type TemplateDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ProjectDTO mirrors models.Project.
type ProjectDTO struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Outline    OutlineNodeDTO     `json:"outline"`
	Settings   ProjectSettingsDTO `json:"settings"`
	CreatedAt  string             `json:"created_at"`
	ModifiedAt string             `json:"modified_at"`
}

// ProjectSettingsDTO mirrors models.ProjectSettings.
type ProjectSettingsDTO struct {
	TemplateID string `json:"template_id"`
	OutputDir  string `json:"output_dir"`
}

// OutlineNodeDTO mirrors models.OutlineNode.
type OutlineNodeDTO struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   *string          `json:"content"`
	Children  []OutlineNodeDTO `json:"children"`
	Scratches []ScratchLinkDTO `json:"scratches"`
}

// ScratchLinkDTO mirrors models.ScratchLink. Mode is "Include" or "Link".
type ScratchLinkDTO struct {
	ScratchID string            `json:"scratch_id"`
	Mode      string            `json:"mode"`
	Insertion InsertionFlagsDTO `json:"insertion"`
}

// InsertionFlagsDTO mirrors models.InsertionFlags.
type InsertionFlagsDTO struct {
	Body      bool `json:"body"`
	Footnote  bool `json:"footnote"`
	Reference bool `json:"reference"`
	Appendix  bool `json:"appendix"`
}
