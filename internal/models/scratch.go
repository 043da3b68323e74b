package models

import "time"

// Scratch is a standalone free-form note with tags and optional source attribution.
type Scratch struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	Tags       []string  `json:"tags"`
	Source     *string   `json:"source"`
}

// Template is reusable document scaffolding referenced by project settings.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}
