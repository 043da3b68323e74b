package api

import "github.com/starford/folio/internal/transfer"

// ScratchListResponse wraps scratch listings.
type ScratchListResponse struct {
	Scratches []transfer.ScratchDTO `json:"scratches" validate:"required"`
	Total     int                   `json:"total" example:"42" validate:"required"`
}

// ProjectListResponse wraps project listings.
type ProjectListResponse struct {
	Projects []transfer.ProjectDTO `json:"projects" validate:"required"`
	Total    int                   `json:"total" example:"3" validate:"required"`
}

// TemplateListResponse wraps template listings.
type TemplateListResponse struct {
	Templates []transfer.TemplateDTO `json:"templates" validate:"required"`
	Total     int                    `json:"total" example:"2" validate:"required"`
}
