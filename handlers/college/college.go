package college

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/services"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/session"
	"github.com/collegehub/cms-api/utils/slug"
	"github.com/collegehub/cms-api/utils/validation"
)

// CollegeHandler handles college management requests
type CollegeHandler struct {
	db        *gorm.DB
	colleges  *services.CollegeService
	pages     *services.PageService
	sessions  *session.Store
	validator *validation.Validator
}

// NewCollegeHandler creates a new college handler
func NewCollegeHandler(db *gorm.DB, sessions *session.Store) *CollegeHandler {
	return &CollegeHandler{
		db:        db,
		colleges:  services.NewCollegeService(db),
		pages:     services.NewPageService(db),
		sessions:  sessions,
		validator: validation.NewValidator(),
	}
}

// CreateCollegeRequest represents the request body for creating a college
type CreateCollegeRequest struct {
	Name                string  `json:"name" validate:"required,min=3,max=255"`
	Slug                string  `json:"slug" validate:"omitempty,max=160"`
	Subdomain           *string `json:"subdomain" validate:"omitempty,hostname_rfc1123,max=63"`
	ParentID            *uint   `json:"parent_id"`
	LogoURL             string  `json:"logo_url" validate:"omitempty,max=1024"`
	ShortDescription    string  `json:"short_description"`
	ThemePrimaryColor   string  `json:"theme_primary_color" validate:"omitempty,max=20"`
	ThemeSecondaryColor string  `json:"theme_secondary_color" validate:"omitempty,max=20"`
	IsParent            bool    `json:"is_parent"`
}

// UpdateCollegeRequest represents the request body for updating a college
type UpdateCollegeRequest struct {
	Name                string  `json:"name" validate:"omitempty,min=3,max=255"`
	Slug                string  `json:"slug" validate:"omitempty,max=160"`
	Subdomain           *string `json:"subdomain" validate:"omitempty,hostname_rfc1123,max=63"`
	ParentID            *uint   `json:"parent_id"`
	LogoURL             string  `json:"logo_url" validate:"omitempty,max=1024"`
	ShortDescription    *string `json:"short_description"`
	ThemePrimaryColor   string  `json:"theme_primary_color" validate:"omitempty,max=20"`
	ThemeSecondaryColor string  `json:"theme_secondary_color" validate:"omitempty,max=20"`
	IsParent            *bool   `json:"is_parent"`
	IsActive            *bool   `json:"is_active"`
}

// ListColleges handles GET /api/v1/colleges
func (h *CollegeHandler) ListColleges(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := c.Query("search", "")

	query := h.db.Model(&model.College{})
	if search != "" {
		query = query.Where("name ILIKE ? OR slug ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count colleges")
	}

	pagination := response.CalculatePagination(page, limit, total)
	offset := (pagination.CurrentPage - 1) * pagination.PerPage

	var colleges []model.College
	if err := query.Order("id ASC").Limit(pagination.PerPage).Offset(offset).Find(&colleges).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch colleges")
	}

	return response.Paginated(c, colleges, pagination)
}

// Dropdown handles GET /api/v1/colleges/dropdown, returning the flattened
// hierarchy used by the college selection control.
func (h *CollegeHandler) Dropdown(c *fiber.Ctx) error {
	var colleges []model.College
	if err := h.db.Order("id ASC").Find(&colleges).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch colleges")
	}

	var selected *uint
	if id, ok := middleware.SelectedCollegeID(c); ok {
		selected = &id
	}

	return response.Success(c, services.DropdownOptions(colleges, selected))
}

// Select handles POST /api/v1/colleges/:id/select, persisting the selected
// college to the admin session.
func (h *CollegeHandler) Select(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid college id")
	}

	var college model.College
	if err := h.db.First(&college, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to fetch college")
	}

	sid, _ := middleware.GetSessionID(c)
	if err := h.sessions.SetSelectedCollege(c.Context(), sid, college.ID); err != nil {
		return response.InternalServerError(c, "Failed to persist selection")
	}

	return response.SuccessWithMessage(c, "College selected", college)
}

// GetCollege handles GET /api/v1/colleges/:id
func (h *CollegeHandler) GetCollege(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid college id")
	}

	var college model.College
	if err := h.db.Preload("Children").First(&college, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to fetch college")
	}

	return response.Success(c, college)
}

// Descendants handles GET /api/v1/colleges/:id/descendants
func (h *CollegeHandler) Descendants(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid college id")
	}

	colleges, err := h.colleges.Descendants(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to traverse hierarchy")
	}

	return response.Success(c, colleges)
}

// CreateCollege handles POST /api/v1/colleges. New colleges get the
// standard page catalogue immediately.
func (h *CollegeHandler) CreateCollege(c *fiber.Ctx) error {
	var req CreateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	collegeSlug := req.Slug
	if collegeSlug == "" {
		collegeSlug = slug.Make(req.Name)
	}

	college := model.College{
		Name:                validation.SanitizeString(req.Name),
		Slug:                collegeSlug,
		Subdomain:           req.Subdomain,
		ParentID:            req.ParentID,
		LogoURL:             req.LogoURL,
		ShortDescription:    req.ShortDescription,
		ThemePrimaryColor:   req.ThemePrimaryColor,
		ThemeSecondaryColor: req.ThemeSecondaryColor,
		IsParent:            req.IsParent,
		IsActive:            true,
	}
	services.NormalizeParent(&college)

	if college.ParentID != nil {
		var count int64
		if err := h.db.Model(&model.College{}).Where("id = ?", *college.ParentID).Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to verify parent college")
		}
		if count == 0 {
			return response.BadRequest(c, "Parent college does not exist")
		}
	}

	if err := h.db.Create(&college).Error; err != nil {
		return response.Conflict(c, "A college with this slug or subdomain already exists")
	}

	if _, err := h.pages.EnsureStandardPages(&college); err != nil {
		return response.InternalServerError(c, "College created but standard pages failed")
	}

	return response.Created(c, college)
}

// UpdateCollege handles PUT /api/v1/colleges/:id
func (h *CollegeHandler) UpdateCollege(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid college id")
	}

	var req UpdateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var college model.College
	if err := h.db.First(&college, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to fetch college")
	}

	if req.Name != "" {
		college.Name = validation.SanitizeString(req.Name)
	}
	if req.Slug != "" {
		college.Slug = req.Slug
	}
	if req.Subdomain != nil {
		college.Subdomain = req.Subdomain
	}
	if req.ParentID != nil {
		college.ParentID = req.ParentID
	}
	if req.LogoURL != "" {
		college.LogoURL = req.LogoURL
	}
	if req.ShortDescription != nil {
		college.ShortDescription = *req.ShortDescription
	}
	if req.ThemePrimaryColor != "" {
		college.ThemePrimaryColor = req.ThemePrimaryColor
	}
	if req.ThemeSecondaryColor != "" {
		college.ThemeSecondaryColor = req.ThemeSecondaryColor
	}
	if req.IsParent != nil {
		college.IsParent = *req.IsParent
	}
	if req.IsActive != nil {
		college.IsActive = *req.IsActive
	}

	// A college must never end up as its own parent
	services.NormalizeParent(&college)

	if err := h.db.Save(&college).Error; err != nil {
		return response.Conflict(c, "A college with this slug or subdomain already exists")
	}

	return response.Success(c, college)
}

// DeleteCollege handles DELETE /api/v1/colleges/:id. Deletion cascades to
// children and to all college-scoped content.
func (h *CollegeHandler) DeleteCollege(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid college id")
	}

	result := h.db.Delete(&model.College{}, uint(id))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete college")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "College not found")
	}

	return response.NoContent(c)
}
