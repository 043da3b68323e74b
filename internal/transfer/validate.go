package transfer

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the shape of a template transfer value.
func (d TemplateDTO) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
	)
}

// Validate checks the shape of a project transfer value, including the
// whole outline. Node ids must be unique across the tree.
func (d ProjectDTO) Validate() error {
	if err := validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.Outline),
		validation.Field(&d.CreatedAt, validation.Required),
		validation.Field(&d.ModifiedAt, validation.Required),
	); err != nil {
		return err
	}
	return uniqueNodeIDs(d.Outline, make(map[string]struct{}))
}

// Validate checks a node and, recursively, its children and links. Mode
// strings are deliberately not checked; see ToIntegrationMode.
func (d OutlineNodeDTO) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.Children),
		validation.Field(&d.Scratches),
	)
}

// Validate checks a scratch link.
func (d ScratchLinkDTO) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ScratchID, validation.Required),
	)
}

func uniqueNodeIDs(n OutlineNodeDTO, seen map[string]struct{}) error {
	if _, dup := seen[n.ID]; dup {
		return fmt.Errorf("outline: duplicate node id %q", n.ID)
	}
	seen[n.ID] = struct{}{}
	for _, child := range n.Children {
		if err := uniqueNodeIDs(child, seen); err != nil {
			return err
		}
	}
	return nil
}
