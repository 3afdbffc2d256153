package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
)

// maxHierarchyDepth bounds college tree traversal. The parent link is only
// checked at write time, so traversal guards against cycles in stored data.
const maxHierarchyDepth = 16

// ErrHierarchyTooDeep is returned when a traversal exceeds maxHierarchyDepth,
// which indicates a parent cycle in the stored rows.
var ErrHierarchyTooDeep = errors.New("college hierarchy exceeds maximum depth")

// CollegeService implements hierarchy operations over the college tree
type CollegeService struct {
	db *gorm.DB
}

// NewCollegeService creates a new college service
func NewCollegeService(db *gorm.DB) *CollegeService {
	return &CollegeService{db: db}
}

// NormalizeParent clears a self-referencing parent id. A college must never
// be its own parent; the invariant is enforced here at write time because
// no database constraint covers it.
func NormalizeParent(college *model.College) {
	if college.ParentID != nil && *college.ParentID == college.ID {
		college.ParentID = nil
	}
}

// RootCollege follows parent links to the top of the tree
func (s *CollegeService) RootCollege(college *model.College) (*model.College, error) {
	current := college
	for depth := 0; current.ParentID != nil; depth++ {
		if depth >= maxHierarchyDepth {
			return nil, ErrHierarchyTooDeep
		}
		var parent model.College
		if err := s.db.First(&parent, *current.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling parent id: treat the current row as the root
				return current, nil
			}
			return nil, err
		}
		current = &parent
	}
	return current, nil
}

// Descendants collects a college and all of its children, depth-first
func (s *CollegeService) Descendants(collegeID uint) ([]model.College, error) {
	var root model.College
	if err := s.db.First(&root, collegeID).Error; err != nil {
		return nil, err
	}

	var out []model.College
	if err := s.collectDescendants(&root, &out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CollegeService) collectDescendants(college *model.College, out *[]model.College, depth int) error {
	if depth >= maxHierarchyDepth {
		return ErrHierarchyTooDeep
	}
	*out = append(*out, *college)

	var children []model.College
	if err := s.db.Where("parent_id = ?", college.ID).Order("id ASC").Find(&children).Error; err != nil {
		return err
	}
	for i := range children {
		if err := s.collectDescendants(&children[i], out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// DropdownOption is one entry of a hierarchical college selection control
type DropdownOption struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Label      string `json:"label"`
	Depth      int    `json:"depth"`
	IsSelected bool   `json:"is_selected"`
}

// DropdownOptions flattens colleges into render order: roots first, each
// root's children immediately after it, recursively, with depth-indented
// labels and the selected flag set for selectedID.
func DropdownOptions(colleges []model.College, selectedID *uint) []DropdownOption {
	children := make(map[uint][]model.College)
	var roots []model.College
	byID := make(map[uint]bool, len(colleges))
	for _, c := range colleges {
		byID[c.ID] = true
	}
	for _, c := range colleges {
		// A parent outside the given set makes the row a root here
		if c.ParentID == nil || !byID[*c.ParentID] || *c.ParentID == c.ID {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var out []DropdownOption
	var walk func(c model.College, depth int)
	walk = func(c model.College, depth int) {
		if depth >= maxHierarchyDepth {
			return
		}
		out = append(out, DropdownOption{
			ID:         c.ID,
			Name:       c.Name,
			Label:      strings.Repeat("-- ", depth) + c.Name,
			Depth:      depth,
			IsSelected: selectedID != nil && *selectedID == c.ID,
		})
		for _, child := range children[c.ID] {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return out
}
