package page

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/services/storage"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// allowed hero image extensions
var heroImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

const maxHeroImageSize = 8 * 1024 * 1024

// SectionHandler handles page section and section item requests
type SectionHandler struct {
	db        *gorm.DB
	static    storage.Storage
	validator *validation.Validator
}

// NewSectionHandler creates a new section handler. static is the local
// static-assets backend hero uploads are written to.
func NewSectionHandler(db *gorm.DB, static storage.Storage) *SectionHandler {
	return &SectionHandler{
		db:        db,
		static:    static,
		validator: validation.NewValidator(),
	}
}

// SectionRequest represents the request body for creating or updating a section
type SectionRequest struct {
	SectionType        string                 `json:"section_type" validate:"required,max=50"`
	SectionTitle       string                 `json:"section_title" validate:"omitempty,max=255"`
	SectionSubtitle    string                 `json:"section_subtitle" validate:"omitempty,max=255"`
	SectionDescription string                 `json:"section_description"`
	SectionLink        string                 `json:"section_link" validate:"omitempty,max=1024"`
	BackgroundType     string                 `json:"background_type" validate:"omitempty,max=50"`
	BackgroundColor    string                 `json:"background_color" validate:"omitempty,max=20"`
	BackgroundImage    string                 `json:"background_image" validate:"omitempty,max=1024"`
	BackgroundGradient string                 `json:"background_gradient" validate:"omitempty,max=255"`
	HeroImageURL       string                 `json:"hero_image_url" validate:"omitempty,max=1024"`
	HeroCTAText        string                 `json:"hero_cta_text" validate:"omitempty,max=255"`
	HeroCTALink        string                 `json:"hero_cta_link" validate:"omitempty,max=1024"`
	HeroStyle          string                 `json:"hero_style" validate:"omitempty,max=50"`
	HeroTextColor      string                 `json:"hero_text_color" validate:"omitempty,max=50"`
	HeroHeight         string                 `json:"hero_height" validate:"omitempty,max=50"`
	SortOrder          int                    `json:"sort_order"`
	IsActive           *bool                  `json:"is_active"`
	ExtraData          map[string]interface{} `json:"extra_data"`
}

// ItemRequest represents the request body for creating or updating an item
type ItemRequest struct {
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

// findScopedSection loads a section whose page belongs to the college.
// Mismatch is indistinguishable from a missing row.
func (h *SectionHandler) findScopedSection(collegeID uint, sectionID uint) (*model.PageSection, error) {
	var section model.PageSection
	err := h.db.Joins("JOIN pages ON pages.id = page_sections.page_id").
		Where("page_sections.id = ? AND pages.college_id = ?", sectionID, collegeID).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// CreateSection handles POST /api/v1/pages/:id/sections
func (h *SectionHandler) CreateSection(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	pageID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	var req SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// The owning page must belong to the selected college
	var count int64
	err = h.db.Model(&model.Page{}).
		Where("id = ? AND college_id = ?", uint(pageID), collegeID).
		Count(&count).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch page")
	}
	if count == 0 {
		return response.NotFound(c, "Page not found")
	}

	section := model.PageSection{
		PageID:             uint(pageID),
		SectionType:        req.SectionType,
		SectionTitle:       req.SectionTitle,
		SectionSubtitle:    req.SectionSubtitle,
		SectionDescription: req.SectionDescription,
		SectionLink:        req.SectionLink,
		BackgroundType:     req.BackgroundType,
		BackgroundColor:    req.BackgroundColor,
		BackgroundImage:    req.BackgroundImage,
		BackgroundGradient: req.BackgroundGradient,
		HeroImageURL:       req.HeroImageURL,
		HeroCTAText:        req.HeroCTAText,
		HeroCTALink:        req.HeroCTALink,
		HeroStyle:          req.HeroStyle,
		HeroTextColor:      req.HeroTextColor,
		HeroHeight:         req.HeroHeight,
		SortOrder:          req.SortOrder,
		IsActive:           true,
		ExtraData:          datatypes.JSONMap(req.ExtraData),
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := h.db.Create(&section).Error; err != nil {
		return response.InternalServerError(c, "Failed to create section")
	}

	return response.Created(c, section)
}

// UpdateSection handles PUT /api/v1/sections/:id
func (h *SectionHandler) UpdateSection(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid section id")
	}

	var req SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	section, err := h.findScopedSection(collegeID, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Section not found")
		}
		return response.InternalServerError(c, "Failed to fetch section")
	}

	section.SectionType = req.SectionType
	section.SectionTitle = req.SectionTitle
	section.SectionSubtitle = req.SectionSubtitle
	section.SectionDescription = req.SectionDescription
	section.SectionLink = req.SectionLink
	section.BackgroundType = req.BackgroundType
	section.BackgroundColor = req.BackgroundColor
	section.BackgroundImage = req.BackgroundImage
	section.BackgroundGradient = req.BackgroundGradient
	section.HeroImageURL = req.HeroImageURL
	section.HeroCTAText = req.HeroCTAText
	section.HeroCTALink = req.HeroCTALink
	section.HeroStyle = req.HeroStyle
	section.HeroTextColor = req.HeroTextColor
	section.HeroHeight = req.HeroHeight
	section.SortOrder = req.SortOrder
	if req.ExtraData != nil {
		section.ExtraData = datatypes.JSONMap(req.ExtraData)
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := h.db.Save(section).Error; err != nil {
		return response.InternalServerError(c, "Failed to update section")
	}

	return response.Success(c, section)
}

// DeleteSection handles DELETE /api/v1/sections/:id
func (h *SectionHandler) DeleteSection(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid section id")
	}

	section, err := h.findScopedSection(collegeID, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Section not found")
		}
		return response.InternalServerError(c, "Failed to fetch section")
	}

	if err := h.db.Delete(section).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete section")
	}

	return response.NoContent(c)
}

// UploadHeroImage handles POST /api/v1/sections/:id/hero-image. The file
// lands under the static dir keyed by section id and original filename,
// and the resulting URL is stored in the section's extra_data.
func (h *SectionHandler) UploadHeroImage(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid section id")
	}

	section, err := h.findScopedSection(collegeID, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Section not found")
		}
		return response.InternalServerError(c, "Failed to fetch section")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "Missing image file")
	}
	if file.Size > maxHeroImageSize {
		return response.BadRequest(c, "Image exceeds the 8MB upload limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !heroImageExtensions[ext] {
		return response.BadRequest(c, "Unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}

	key := fmt.Sprintf("uploads/hero/hero_%d_%s", section.ID, filepath.Base(file.Filename))
	url, err := h.static.Save(c.Context(), key, data, storage.ContentTypeFor(file.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to store image")
	}

	if section.ExtraData == nil {
		section.ExtraData = datatypes.JSONMap{}
	}
	section.ExtraData["hero_image_url"] = url

	if err := h.db.Save(section).Error; err != nil {
		return response.InternalServerError(c, "Failed to update section")
	}

	return response.SuccessWithMessage(c, "Hero image uploaded", fiber.Map{
		"url":     url,
		"section": section,
	})
}

// CreateItem handles POST /api/v1/sections/:id/items
func (h *SectionHandler) CreateItem(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	sectionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid section id")
	}

	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if _, err := h.findScopedSection(collegeID, uint(sectionID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Section not found")
		}
		return response.InternalServerError(c, "Failed to fetch section")
	}

	item := model.SectionItem{
		SectionID:   uint(sectionID),
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		CTAText:     req.CTAText,
		CTALink:     req.CTALink,
		SortOrder:   req.SortOrder,
		ExtraData:   datatypes.JSONMap(req.ExtraData),
	}
	if err := h.db.Create(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to create item")
	}

	return response.Created(c, item)
}

// UpdateItem handles PUT /api/v1/items/:id
func (h *SectionHandler) UpdateItem(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid item id")
	}

	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var item model.SectionItem
	err = h.db.Joins("JOIN page_sections ON page_sections.id = section_items.section_id").
		Joins("JOIN pages ON pages.id = page_sections.page_id").
		Where("section_items.id = ? AND pages.college_id = ?", uint(id), collegeID).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Item not found")
		}
		return response.InternalServerError(c, "Failed to fetch item")
	}

	item.Title = req.Title
	item.Subtitle = req.Subtitle
	item.Description = req.Description
	item.ImageURL = req.ImageURL
	item.VideoURL = req.VideoURL
	item.CTAText = req.CTAText
	item.CTALink = req.CTALink
	item.SortOrder = req.SortOrder
	if req.ExtraData != nil {
		item.ExtraData = datatypes.JSONMap(req.ExtraData)
	}

	if err := h.db.Save(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to update item")
	}

	return response.Success(c, item)
}

// DeleteItem handles DELETE /api/v1/items/:id
func (h *SectionHandler) DeleteItem(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid item id")
	}

	result := h.db.Where(
		"id IN (?)",
		h.db.Model(&model.SectionItem{}).Select("section_items.id").
			Joins("JOIN page_sections ON page_sections.id = section_items.section_id").
			Joins("JOIN pages ON pages.id = page_sections.page_id").
			Where("section_items.id = ? AND pages.college_id = ?", uint(id), collegeID),
	).Delete(&model.SectionItem{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete item")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Item not found")
	}

	return response.NoContent(c)
}
