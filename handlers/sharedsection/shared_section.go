package sharedsection

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// SharedSectionHandler handles reusable content blocks and their page
// attachments
type SharedSectionHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewSharedSectionHandler creates a new shared section handler
func NewSharedSectionHandler(db *gorm.DB) *SharedSectionHandler {
	return &SharedSectionHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// SharedSectionRequest represents the request body for a shared section
type SharedSectionRequest struct {
	SectionType     string `json:"section_type" validate:"required,max=50"`
	SectionTitle    string `json:"section_title" validate:"omitempty,max=255"`
	SectionSubtitle string `json:"section_subtitle" validate:"omitempty,max=255"`
	SortOrder       int    `json:"sort_order"`
	IsActive        *bool  `json:"is_active"`
}

// SharedItemRequest represents the request body for a shared section item
type SharedItemRequest struct {
	Title       string                 `json:"title" validate:"omitempty,max=255"`
	Subtitle    string                 `json:"subtitle" validate:"omitempty,max=255"`
	Description string                 `json:"description"`
	ImageURL    string                 `json:"image_url" validate:"omitempty,max=1024"`
	VideoURL    string                 `json:"video_url" validate:"omitempty,max=1024"`
	CTAText     string                 `json:"cta_text" validate:"omitempty,max=255"`
	CTALink     string                 `json:"cta_link" validate:"omitempty,max=1024"`
	SortOrder   int                    `json:"sort_order"`
	ExtraData   map[string]interface{} `json:"extra_data"`
}

// AttachRequest represents the request body for attaching to a page
type AttachRequest struct {
	PageID    uint `json:"page_id" validate:"required"`
	SortOrder int  `json:"sort_order"`
}

// List handles GET /api/v1/shared-sections
func (h *SharedSectionHandler) List(c *fiber.Ctx) error {
	var sections []model.SharedSection
	err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Order("sort_order ASC, id ASC").Find(&sections).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch shared sections")
	}
	return response.Success(c, sections)
}

// Create handles POST /api/v1/shared-sections
func (h *SharedSectionHandler) Create(c *fiber.Ctx) error {
	var req SharedSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	section := model.SharedSection{
		SectionType:     req.SectionType,
		SectionTitle:    req.SectionTitle,
		SectionSubtitle: req.SectionSubtitle,
		SortOrder:       req.SortOrder,
		IsActive:        true,
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := h.db.Create(&section).Error; err != nil {
		return response.InternalServerError(c, "Failed to create shared section")
	}
	return response.Created(c, section)
}

// Update handles PUT /api/v1/shared-sections/:id
func (h *SharedSectionHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid shared section id")
	}

	var req SharedSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var section model.SharedSection
	if err := h.db.First(&section, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Shared section not found")
		}
		return response.InternalServerError(c, "Failed to fetch shared section")
	}

	section.SectionType = req.SectionType
	section.SectionTitle = req.SectionTitle
	section.SectionSubtitle = req.SectionSubtitle
	section.SortOrder = req.SortOrder
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := h.db.Save(&section).Error; err != nil {
		return response.InternalServerError(c, "Failed to update shared section")
	}
	return response.Success(c, section)
}

// Delete handles DELETE /api/v1/shared-sections/:id. Attachments and items
// go with it.
func (h *SharedSectionHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid shared section id")
	}

	result := h.db.Delete(&model.SharedSection{}, uint(id))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete shared section")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Shared section not found")
	}
	return response.NoContent(c)
}

// CreateItem handles POST /api/v1/shared-sections/:id/items
func (h *SharedSectionHandler) CreateItem(c *fiber.Ctx) error {
	sectionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid shared section id")
	}

	var req SharedItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var count int64
	if err := h.db.Model(&model.SharedSection{}).Where("id = ?", uint(sectionID)).Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch shared section")
	}
	if count == 0 {
		return response.NotFound(c, "Shared section not found")
	}

	item := model.SharedSectionItem{
		SharedSectionID: uint(sectionID),
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		VideoURL:        req.VideoURL,
		CTAText:         req.CTAText,
		CTALink:         req.CTALink,
		SortOrder:       req.SortOrder,
		ExtraData:       datatypes.JSONMap(req.ExtraData),
	}
	if err := h.db.Create(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to create item")
	}
	return response.Created(c, item)
}

// DeleteItem handles DELETE /api/v1/shared-sections/items/:id
func (h *SharedSectionHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid item id")
	}

	result := h.db.Delete(&model.SharedSectionItem{}, uint(id))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete item")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Item not found")
	}
	return response.NoContent(c)
}

// Attach handles POST /api/v1/shared-sections/:id/attach. The target page
// must belong to the selected college; a repeated attach updates the sort
// order instead of duplicating the link.
func (h *SharedSectionHandler) Attach(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	sectionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid shared section id")
	}

	var req AttachRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var count int64
	if err := h.db.Model(&model.SharedSection{}).Where("id = ?", uint(sectionID)).Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch shared section")
	}
	if count == 0 {
		return response.NotFound(c, "Shared section not found")
	}

	// Ownership check on the page; mismatch answers like a missing page
	err = h.db.Model(&model.Page{}).
		Where("id = ? AND college_id = ?", req.PageID, collegeID).
		Count(&count).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch page")
	}
	if count == 0 {
		return response.NotFound(c, "Page not found")
	}

	attachment := model.PageSharedSection{
		PageID:          req.PageID,
		SharedSectionID: uint(sectionID),
		SortOrder:       req.SortOrder,
	}

	var existing model.PageSharedSection
	err = h.db.Where("page_id = ? AND shared_section_id = ?", req.PageID, uint(sectionID)).
		First(&existing).Error
	switch {
	case err == nil:
		existing.SortOrder = req.SortOrder
		if err := h.db.Save(&existing).Error; err != nil {
			return response.InternalServerError(c, "Failed to update attachment")
		}
		return response.Success(c, existing)
	case err == gorm.ErrRecordNotFound:
		if err := h.db.Create(&attachment).Error; err != nil {
			return response.InternalServerError(c, "Failed to attach shared section")
		}
		return response.Created(c, attachment)
	default:
		return response.InternalServerError(c, "Failed to fetch attachment")
	}
}

// Detach handles POST /api/v1/shared-sections/:id/detach
func (h *SharedSectionHandler) Detach(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	sectionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid shared section id")
	}

	var req AttachRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var count int64
	err = h.db.Model(&model.Page{}).
		Where("id = ? AND college_id = ?", req.PageID, collegeID).
		Count(&count).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch page")
	}
	if count == 0 {
		return response.NotFound(c, "Page not found")
	}

	result := h.db.Where("page_id = ? AND shared_section_id = ?", req.PageID, uint(sectionID)).
		Delete(&model.PageSharedSection{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to detach shared section")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Attachment not found")
	}
	return response.NoContent(c)
}
