package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RootTitle is the title given to the outline root of a new project.
const RootTitle = "Root"

// Project is a writing work organized as a tree of outline sections.
// It exclusively owns its outline.
type Project struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Outline    OutlineNode     `json:"outline"`
	Settings   ProjectSettings `json:"settings"`
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
}

// ProjectSettings holds output configuration. TemplateID is not checked
// against stored templates.
type ProjectSettings struct {
	TemplateID string `json:"template_id"`
	OutputDir  string `json:"output_dir"`
}

// OutlineNode is one section of a project outline. Children are held by
// value, so a node can never appear twice in the same tree.
type OutlineNode struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   *string       `json:"content"`
	Children  []OutlineNode `json:"children"`
	Scratches []ScratchLink `json:"scratches"`
}

// NewRootOutline returns the empty root node of a freshly created project.
func NewRootOutline(id string) OutlineNode {
	return OutlineNode{
		ID:        id,
		Title:     RootTitle,
		Children:  []OutlineNode{},
		Scratches: []ScratchLink{},
	}
}

// Walk visits n and its descendants depth-first in pre-order. Returning
// false from fn stops the walk.
func (n *OutlineNode) Walk(fn func(node *OutlineNode, depth int) bool) {
	n.walk(fn, 0)
}

func (n *OutlineNode) walk(fn func(*OutlineNode, int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Find returns the node with the given id, or nil.
func (n *OutlineNode) Find(id string) *OutlineNode {
	var found *OutlineNode
	n.Walk(func(node *OutlineNode, _ int) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *OutlineNode) Count() int {
	total := 0
	n.Walk(func(*OutlineNode, int) bool {
		total++
		return true
	})
	return total
}

// ScratchLink references a Scratch from an outline node. The scratch is
// not owned by the node.
type ScratchLink struct {
	ScratchID string          `json:"scratch_id"`
	Mode      IntegrationMode `json:"mode"`
	Insertion InsertionFlags  `json:"insertion"`
}

// InsertionFlags mark where linked content is placed. Any combination is valid.
type InsertionFlags struct {
	Body      bool `json:"body"`
	Footnote  bool `json:"footnote"`
	Reference bool `json:"reference"`
	Appendix  bool `json:"appendix"`
}

// IntegrationMode selects whether a linked scratch is inlined or referenced.
type IntegrationMode int

const (
	// IntegrationInclude materializes the scratch content inline.
	IntegrationInclude IntegrationMode = iota
	// IntegrationLink keeps only a reference to the scratch.
	IntegrationLink
)

// String returns the tag name of the mode.
func (m IntegrationMode) String() string {
	switch m {
	case IntegrationInclude:
		return "Include"
	case IntegrationLink:
		return "Link"
	default:
		return fmt.Sprintf("IntegrationMode(%d)", int(m))
	}
}

// ParseIntegrationMode maps a tag name to its mode. Unlike the transfer
// layer it does not fall back to a default.
func ParseIntegrationMode(s string) (IntegrationMode, error) {
	switch s {
	case "Include":
		return IntegrationInclude, nil
	case "Link":
		return IntegrationLink, nil
	default:
		return 0, fmt.Errorf("unknown integration mode %q", s)
	}
}

// MarshalJSON encodes the mode as its tag name.
func (m IntegrationMode) MarshalJSON() ([]byte, error) {
	if m != IntegrationInclude && m != IntegrationLink {
		return nil, fmt.Errorf("models: invalid integration mode %d", int(m))
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a tag name. Unknown tags are rejected so corrupt
// files surface as read errors.
func (m *IntegrationMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("models: integration mode: %w", err)
	}
	mode, err := ParseIntegrationMode(s)
	if err != nil {
		return fmt.Errorf("models: %w", err)
	}
	*m = mode
	return nil
}
