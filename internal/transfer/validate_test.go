package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectValidateAcceptsDeepTree(t *testing.T) {
	require.NoError(t, FromProject(deepProject()).Validate())
}

func TestProjectValidateRequiresIDs(t *testing.T) {
	dto := FromProject(deepProject())
	dto.ID = ""
	assert.Error(t, dto.Validate())

	dto = FromProject(deepProject())
	dto.Outline.Children[0].Children[0].ID = ""
	assert.Error(t, dto.Validate())

	dto = FromProject(deepProject())
	dto.Outline.Children[0].Scratches[0].ScratchID = ""
	assert.Error(t, dto.Validate())
}

func TestProjectValidateRejectsDuplicateNodeIDs(t *testing.T) {
	dto := FromProject(deepProject())
	dto.Outline.Children[1].ID = "n-1-1-1"

	err := dto.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node id")
}

func TestProjectValidateIgnoresUnknownMode(t *testing.T) {
	dto := FromProject(deepProject())
	dto.Outline.Children[0].Scratches[0].Mode = "whatever"
	assert.NoError(t, dto.Validate())
}
