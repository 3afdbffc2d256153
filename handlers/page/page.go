package page

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/services"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/slug"
	"github.com/collegehub/cms-api/utils/validation"
)

// PageHandler handles page management requests. Every mutation is scoped to
// the admin's selected college; a row owned by another college answers 404
// exactly like a missing row.
type PageHandler struct {
	db        *gorm.DB
	pages     *services.PageService
	validator *validation.Validator
}

// NewPageHandler creates a new page handler
func NewPageHandler(db *gorm.DB) *PageHandler {
	return &PageHandler{
		db:        db,
		pages:     services.NewPageService(db),
		validator: validation.NewValidator(),
	}
}

// CreatePageRequest represents the request body for creating a page
type CreatePageRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=255"`
	Slug          string `json:"slug" validate:"omitempty,max=160"`
	PageType      string `json:"page_type" validate:"omitempty,max=50"`
	TemplateType  string `json:"template_type" validate:"omitempty,max=50"`
	IsInheritable bool   `json:"is_inheritable"`
	IsGlobal      bool   `json:"is_global"`
}

// UpdatePageRequest represents the request body for updating a page
type UpdatePageRequest struct {
	Title         string `json:"title" validate:"omitempty,min=1,max=255"`
	Slug          string `json:"slug" validate:"omitempty,max=160"`
	PageType      string `json:"page_type" validate:"omitempty,max=50"`
	TemplateType  string `json:"template_type" validate:"omitempty,max=50"`
	IsInheritable *bool  `json:"is_inheritable"`
	IsActive      *bool  `json:"is_active"`
}

// findScopedPage loads a page owned by the given college. Ownership
// mismatch and missing id both come back as record-not-found so the
// response cannot leak another tenant's data.
func (h *PageHandler) findScopedPage(collegeID uint, pageID uint) (*model.Page, error) {
	var page model.Page
	err := h.db.Where("id = ? AND college_id = ?", pageID, collegeID).First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPages handles GET /api/v1/pages
func (h *PageHandler) ListPages(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	includeInheritable := c.Query("include_inherited") == "true"
	pages, err := h.pages.CollegePages(collegeID, includeInheritable)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch pages")
	}

	return response.Success(c, pages)
}

// GetPage handles GET /api/v1/pages/:id
func (h *PageHandler) GetPage(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	var page model.Page
	err = h.db.Preload("SEO").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Sections.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ? AND college_id = ?", uint(id), collegeID).
		First(&page).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Page not found")
		}
		return response.InternalServerError(c, "Failed to fetch page")
	}

	return response.Success(c, page)
}

// CreatePage handles POST /api/v1/pages. college_id is stamped from the
// resolved selection, never from the request body. Super admins may create
// global pages instead with is_global.
func (h *PageHandler) CreatePage(c *fiber.Ctx) error {
	var req CreatePageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var collegeID *uint
	if req.IsGlobal {
		role, _ := middleware.GetUserRole(c)
		if role != model.RoleSuperAdmin {
			return response.Forbidden(c, "Only super admins can create global pages")
		}
	} else {
		id, ok := middleware.SelectedCollegeID(c)
		if !ok {
			return response.SelectCollege(c)
		}
		collegeID = &id
	}

	pageSlug := req.Slug
	if pageSlug == "" {
		pageSlug = slug.Make(req.Title)
	}
	pageType := req.PageType
	if pageType == "" {
		pageType = model.PageTypeStatic
	}

	page := model.Page{
		CollegeID:     collegeID,
		Slug:          pageSlug,
		Title:         validation.SanitizeString(req.Title),
		PageType:      pageType,
		TemplateType:  req.TemplateType,
		IsInheritable: req.IsInheritable,
		IsActive:      true,
	}
	if err := h.db.Create(&page).Error; err != nil {
		return response.Conflict(c, "A page with this slug already exists for the college")
	}

	return response.Created(c, page)
}

// UpdatePage handles PUT /api/v1/pages/:id
func (h *PageHandler) UpdatePage(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	var req UpdatePageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	page, err := h.findScopedPage(collegeID, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Page not found")
		}
		return response.InternalServerError(c, "Failed to fetch page")
	}

	if req.Title != "" {
		page.Title = validation.SanitizeString(req.Title)
	}
	if req.Slug != "" {
		page.Slug = req.Slug
	}
	if req.PageType != "" {
		page.PageType = req.PageType
	}
	if req.TemplateType != "" {
		page.TemplateType = req.TemplateType
	}
	if req.IsInheritable != nil {
		page.IsInheritable = *req.IsInheritable
	}
	if req.IsActive != nil {
		page.IsActive = *req.IsActive
	}

	if err := h.db.Save(page).Error; err != nil {
		return response.Conflict(c, "A page with this slug already exists for the college")
	}

	return response.Success(c, page)
}

// DeletePage handles DELETE /api/v1/pages/:id. The cascade removes the
// page's sections and their items.
func (h *PageHandler) DeletePage(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	result := h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).Delete(&model.Page{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete page")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Page not found")
	}

	return response.NoContent(c)
}

// InheritPage handles POST /api/v1/pages/:id/inherit, cloning an
// inheritable page into the selected college. Idempotent.
func (h *PageHandler) InheritPage(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	var parent model.Page
	if err := h.db.First(&parent, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Page not found")
		}
		return response.InternalServerError(c, "Failed to fetch page")
	}

	clone, err := h.pages.InheritPage(&parent, collegeID)
	if err != nil {
		if err == services.ErrNotInheritable {
			return response.BadRequest(c, "Page is not inheritable")
		}
		return response.InternalServerError(c, "Failed to inherit page")
	}

	return response.Success(c, clone)
}
