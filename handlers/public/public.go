package public

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/services"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// PublicHandler serves the unauthenticated website API
type PublicHandler struct {
	db        *gorm.DB
	pages     *services.PageService
	search    *services.SearchService
	validator *validation.Validator
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{
		db:        db,
		pages:     services.NewPageService(db),
		search:    services.NewSearchService(db),
		validator: validation.NewValidator(),
	}
}

// collegeScope resolves which college a public list applies to: an explicit
// college_id query parameter when well-formed, otherwise the subdomain's
// current college.
func (h *PublicHandler) collegeScope(c *fiber.Ctx) (uint, bool) {
	if raw := c.Query("college_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			return uint(id), true
		}
	}
	if college, ok := middleware.GetCurrentCollege(c); ok {
		return college.ID, true
	}
	return 0, false
}

// CurrentCollege handles GET /api/v1/public/current
func (h *PublicHandler) CurrentCollege(c *fiber.Ctx) error {
	college, ok := middleware.GetCurrentCollege(c)
	if !ok {
		return response.NotFound(c, "No college resolved for this host")
	}
	return response.Success(c, college)
}

// ListColleges handles GET /api/v1/public/colleges
func (h *PublicHandler) ListColleges(c *fiber.Ctx) error {
	var colleges []model.College
	err := h.db.Where("is_active = ?", true).Order("id ASC").Find(&colleges).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch colleges")
	}
	return response.Success(c, colleges)
}

// GetCollege handles GET /api/v1/public/colleges/:slug, aggregating the
// numbers and top rows the college landing page renders.
func (h *PublicHandler) GetCollege(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var college model.College
	err := h.db.Where("slug = ? AND is_active = ?", slug, true).First(&college).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to fetch college")
	}

	counts := fiber.Map{}
	for name, m := range map[string]interface{}{
		"courses":    &model.Course{},
		"faculty":    &model.Faculty{},
		"facilities": &model.Facility{},
		"activities": &model.Activity{},
	} {
		var n int64
		if err := h.db.Model(m).Where("college_id = ?", college.ID).Count(&n).Error; err != nil {
			return response.InternalServerError(c, "Failed to fetch college")
		}
		counts[name] = n
	}

	var courses []model.Course
	h.db.Where("college_id = ? AND is_active = ?", college.ID, true).Order("id ASC").Limit(6).Find(&courses)

	var faculty []model.Faculty
	h.db.Where("college_id = ? AND is_active = ?", college.ID, true).Order("id ASC").Limit(8).Find(&faculty)

	var facilities []model.Facility
	h.db.Where("college_id = ?", college.ID).Order("id ASC").Limit(6).Find(&facilities)

	var activities []model.Activity
	h.db.Where("college_id = ?", college.ID).Order("event_date DESC NULLS LAST, id DESC").Limit(5).Find(&activities)

	var latestPlacement *model.Placement
	var placement model.Placement
	err = h.db.Preload("Recruiters").
		Where("college_id = ?", college.ID).
		Order("year DESC").First(&placement).Error
	if err == nil {
		latestPlacement = &placement
	} else if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to fetch college")
	}

	var admissionInfo *model.Admission
	var admission model.Admission
	err = h.db.Where("college_id = ?", college.ID).First(&admission).Error
	if err == nil {
		admissionInfo = &admission
	} else if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to fetch college")
	}

	return response.Success(c, fiber.Map{
		"college":    college,
		"counts":     counts,
		"courses":    courses,
		"faculty":    faculty,
		"facilities": facilities,
		"activities": activities,
		"placement":  latestPlacement,
		"admission":  admissionInfo,
	})
}

// GetPage handles GET /api/v1/public/pages/:id, returning the page with
// its projected sections.
func (h *PublicHandler) GetPage(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	var page model.Page
	err = h.db.Preload("SEO").Where("id = ? AND is_active = ?", uint(id), true).First(&page).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Page not found")
		}
		return response.InternalServerError(c, "Failed to fetch page")
	}

	return h.renderPage(c, &page)
}

// GetCollegePage handles GET /api/v1/public/colleges/:slug/pages/:pageSlug.
// A slug missing from the college's own pages falls back to the global page
// with that slug.
func (h *PublicHandler) GetCollegePage(c *fiber.Ctx) error {
	collegeSlug := c.Params("slug")
	pageSlug := c.Params("pageSlug")

	var college model.College
	err := h.db.Where("slug = ? AND is_active = ?", collegeSlug, true).First(&college).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to fetch college")
	}

	var page model.Page
	err = h.db.Preload("SEO").
		Where("college_id = ? AND slug = ? AND is_active = ?", college.ID, pageSlug, true).
		First(&page).Error
	if err == gorm.ErrRecordNotFound {
		err = h.db.Preload("SEO").
			Where("college_id IS NULL AND slug = ? AND is_active = ?", pageSlug, true).
			First(&page).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Page not found")
		}
		return response.InternalServerError(c, "Failed to fetch page")
	}

	return h.renderPage(c, &page)
}

func (h *PublicHandler) renderPage(c *fiber.Ctx, page *model.Page) error {
	sections, err := h.pages.PageSections(page.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to project sections")
	}
	return response.Success(c, fiber.Map{
		"page":     page,
		"sections": sections,
	})
}

// ListCourses handles GET /api/v1/public/courses
func (h *PublicHandler) ListCourses(c *fiber.Ctx) error {
	query := h.db.Where("is_active = ?", true)
	if collegeID, ok := h.collegeScope(c); ok {
		query = query.Where("college_id = ?", collegeID)
	}

	var courses []model.Course
	if err := query.Order("id ASC").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}
	return response.Success(c, courses)
}

// GetCourse handles GET /api/v1/public/courses/:id with the long-form
// detail payload.
func (h *PublicHandler) GetCourse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var course model.Course
	err = h.db.Preload("Details").
		Where("id = ? AND is_active = ?", uint(id), true).
		First(&course).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// ListFaculty handles GET /api/v1/public/faculty
func (h *PublicHandler) ListFaculty(c *fiber.Ctx) error {
	query := h.db.Where("is_active = ?", true)
	if collegeID, ok := h.collegeScope(c); ok {
		query = query.Where("college_id = ?", collegeID)
	}

	var faculty []model.Faculty
	if err := query.Order("id ASC").Find(&faculty).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch faculty")
	}
	return response.Success(c, faculty)
}

// ListPlacements handles GET /api/v1/public/placements
func (h *PublicHandler) ListPlacements(c *fiber.Ctx) error {
	query := h.db.Preload("StudentPlacements").Preload("Recruiters")
	if collegeID, ok := h.collegeScope(c); ok {
		query = query.Where("college_id = ?", collegeID)
	}

	var placements []model.Placement
	if err := query.Order("year DESC").Find(&placements).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch placements")
	}
	return response.Success(c, placements)
}

// ListFacilities handles GET /api/v1/public/facilities
func (h *PublicHandler) ListFacilities(c *fiber.Ctx) error {
	query := h.db.Session(&gorm.Session{})
	if collegeID, ok := h.collegeScope(c); ok {
		query = query.Where("college_id = ?", collegeID)
	}

	var facilities []model.Facility
	if err := query.Order("id ASC").Find(&facilities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch facilities")
	}
	return response.Success(c, facilities)
}

// ListActivities handles GET /api/v1/public/activities
func (h *PublicHandler) ListActivities(c *fiber.Ctx) error {
	query := h.db.Session(&gorm.Session{})
	if collegeID, ok := h.collegeScope(c); ok {
		query = query.Where("college_id = ?", collegeID)
	}
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var activities []model.Activity
	if err := query.Order("event_date DESC NULLS LAST, id DESC").Find(&activities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch activities")
	}
	return response.Success(c, activities)
}

// Search handles GET /api/v1/public/search. Queries shorter than two
// characters are rejected before any database access.
func (h *PublicHandler) Search(c *fiber.Ctx) error {
	results, err := h.search.Search(c.Query("q"), c.Query("type"))
	if err != nil {
		if err == services.ErrQueryTooShort {
			return response.BadRequest(c, "Search query must be at least 2 characters")
		}
		return response.InternalServerError(c, "Search failed")
	}
	return response.Success(c, results)
}
