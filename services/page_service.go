package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
)

// ErrNotInheritable is returned when inheriting a page not flagged inheritable.
var ErrNotInheritable = errors.New("page is not inheritable")

// PageService implements page inheritance and the standard page catalogue
type PageService struct {
	db *gorm.DB
}

// NewPageService creates a new page service
func NewPageService(db *gorm.DB) *PageService {
	return &PageService{db: db}
}

// standardPage describes one entry of the fixed catalogue every college gets.
// Title is a format string interpolating the college name.
type standardPage struct {
	Slug         string
	TitleFormat  string
	PageType     string
	TemplateType string
}

var standardPages = []standardPage{
	{"home", "%s - Home", model.PageTypeHome, model.TemplateHeroSection},
	{"about", "About %s", model.PageTypeAbout, model.TemplateBlank},
	{"courses", "Programs at %s", model.PageTypeCourses, model.TemplateCoursesList},
	{"faculty", "Faculty - %s", model.PageTypeFaculty, model.TemplateFacultyList},
	{"placements", "Placements - %s", model.PageTypePlacements, model.TemplatePlacements},
	{"facilities", "Facilities - %s", model.PageTypeFacilities, model.TemplateFacilitiesList},
	{"admissions", "Admissions - %s", model.PageTypeAdmissions, model.TemplateBlank},
	{"contact", "Contact %s", model.PageTypeContact, model.TemplateBlank},
}

// InheritPage clones an inheritable page into the child college's scope, or
// returns the existing clone. Idempotent: the clone is keyed by
// (college_id, parent_page_id), so a second call returns the first call's
// row. The clone is never itself inheritable, which keeps inheritance to a
// single level.
func (s *PageService) InheritPage(parent *model.Page, childCollegeID uint) (*model.Page, error) {
	if !parent.IsInheritable {
		return nil, ErrNotInheritable
	}

	var existing model.Page
	err := s.db.Where("college_id = ? AND parent_page_id = ?", childCollegeID, parent.ID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	clone := model.Page{
		CollegeID:     &childCollegeID,
		Slug:          parent.Slug,
		Title:         parent.Title,
		PageType:      parent.PageType,
		TemplateType:  parent.TemplateType,
		ParentPageID:  &parent.ID,
		IsInheritable: false,
		IsActive:      parent.IsActive,
	}
	if err := s.db.Create(&clone).Error; err != nil {
		return nil, err
	}
	return &clone, nil
}

// EnsureStandardPages creates any missing catalogue pages for a college.
// Existing pages with matching slugs are left untouched.
func (s *PageService) EnsureStandardPages(college *model.College) ([]model.Page, error) {
	var created []model.Page
	for _, sp := range standardPages {
		var count int64
		err := s.db.Model(&model.Page{}).
			Where("college_id = ? AND slug = ?", college.ID, sp.Slug).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}

		page := model.Page{
			CollegeID:    &college.ID,
			Slug:         sp.Slug,
			Title:        fmt.Sprintf(sp.TitleFormat, college.Name),
			PageType:     sp.PageType,
			TemplateType: sp.TemplateType,
			IsActive:     true,
		}
		if err := s.db.Create(&page).Error; err != nil {
			return nil, err
		}
		created = append(created, page)
	}
	return created, nil
}

// CollegePages lists a college's pages, optionally folding in global
// inheritable pages the college has not cloned yet.
func (s *PageService) CollegePages(collegeID uint, includeInheritable bool) ([]model.Page, error) {
	var pages []model.Page
	if err := s.db.Where("college_id = ?", collegeID).Order("id ASC").Find(&pages).Error; err != nil {
		return nil, err
	}
	if !includeInheritable {
		return pages, nil
	}

	cloned := make(map[uint]bool)
	for _, p := range pages {
		if p.ParentPageID != nil {
			cloned[*p.ParentPageID] = true
		}
	}

	var global []model.Page
	err := s.db.Where("college_id IS NULL AND is_inheritable = ?", true).
		Order("id ASC").Find(&global).Error
	if err != nil {
		return nil, err
	}
	for _, g := range global {
		if !cloned[g.ID] {
			pages = append(pages, g)
		}
	}
	return pages, nil
}

// PageSections loads a page's own sections plus attached shared sections,
// projects them, and merges both lists into one render order.
func (s *PageService) PageSections(pageID uint) ([]ProjectedSection, error) {
	var sections []model.PageSection
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Where("page_id = ? AND is_active = ?", pageID, true).
		Order("sort_order ASC, id ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}

	projected := make([]ProjectedSection, 0, len(sections))
	for _, sec := range sections {
		projected = append(projected, ProjectSection(sec, sec.Items))
	}

	var attachments []model.PageSharedSection
	err = s.db.Preload("SharedSection.Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Where("page_id = ?", pageID).
		Order("sort_order ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	for _, att := range attachments {
		if !att.SharedSection.IsActive {
			continue
		}
		projected = append(projected, ProjectSharedSection(att.SharedSection, att.SharedSection.Items, att.SortOrder))
	}

	// Merge by the per-page sort order, stable so own sections keep
	// precedence on ties
	sort.SliceStable(projected, func(i, j int) bool {
		return projected[i].SortOrder < projected[j].SortOrder
	})
	return projected, nil
}
