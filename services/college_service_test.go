package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/cms-api/model"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestNormalizeParentClearsSelfReference(t *testing.T) {
	college := model.College{ID: 7, ParentID: uintPtr(7)}
	NormalizeParent(&college)
	assert.Nil(t, college.ParentID)
}

func TestNormalizeParentKeepsValidParent(t *testing.T) {
	college := model.College{ID: 7, ParentID: uintPtr(3)}
	NormalizeParent(&college)
	require.NotNil(t, college.ParentID)
	assert.Equal(t, uint(3), *college.ParentID)
}

func TestDropdownOptionsFlattensHierarchy(t *testing.T) {
	colleges := []model.College{
		{ID: 1, Name: "Group"},
		{ID: 2, Name: "Engineering", ParentID: uintPtr(1)},
		{ID: 3, Name: "Management", ParentID: uintPtr(1)},
		{ID: 4, Name: "Polytechnic", ParentID: uintPtr(2)},
	}

	opts := DropdownOptions(colleges, uintPtr(3))
	require.Len(t, opts, 4)

	// Depth-first: each parent directly followed by its subtree
	assert.Equal(t, "Group", opts[0].Name)
	assert.Equal(t, 0, opts[0].Depth)
	assert.Equal(t, "Engineering", opts[1].Name)
	assert.Equal(t, 1, opts[1].Depth)
	assert.Equal(t, "-- Engineering", opts[1].Label)
	assert.Equal(t, "Polytechnic", opts[2].Name)
	assert.Equal(t, 2, opts[2].Depth)
	assert.Equal(t, "-- -- Polytechnic", opts[2].Label)
	assert.Equal(t, "Management", opts[3].Name)

	for _, o := range opts {
		assert.Equal(t, o.ID == 3, o.IsSelected)
	}
}

func TestDropdownOptionsParentOutsideSetBecomesRoot(t *testing.T) {
	colleges := []model.College{
		{ID: 5, Name: "Orphan", ParentID: uintPtr(99)},
	}

	opts := DropdownOptions(colleges, nil)
	require.Len(t, opts, 1)
	assert.Equal(t, 0, opts[0].Depth)
	assert.Equal(t, "Orphan", opts[0].Label)
}

func TestDropdownOptionsSelfParentBecomesRoot(t *testing.T) {
	colleges := []model.College{
		{ID: 6, Name: "Loop", ParentID: uintPtr(6)},
	}

	opts := DropdownOptions(colleges, nil)
	require.Len(t, opts, 1)
	assert.Equal(t, 0, opts[0].Depth)
}

func TestDropdownOptionsEmptyInput(t *testing.T) {
	assert.Empty(t, DropdownOptions(nil, nil))
}
