package facility

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// FacilityHandler handles campus facility entries
type FacilityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(db *gorm.DB) *FacilityHandler {
	return &FacilityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// FacilityRequest represents the request body for a facility
type FacilityRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=1024"`
}

// ListFacilities handles GET /api/v1/facilities
func (h *FacilityHandler) ListFacilities(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var facilities []model.Facility
	if err := h.db.Where("college_id = ?", collegeID).Order("id ASC").Find(&facilities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch facilities")
	}

	return response.Success(c, facilities)
}

// CreateFacility handles POST /api/v1/facilities
func (h *FacilityHandler) CreateFacility(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var req FacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	facility := model.Facility{
		CollegeID:   collegeID,
		Name:        validation.SanitizeString(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.db.Create(&facility).Error; err != nil {
		return response.InternalServerError(c, "Failed to create facility")
	}

	return response.Created(c, facility)
}

// UpdateFacility handles PUT /api/v1/facilities/:id
func (h *FacilityHandler) UpdateFacility(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid facility id")
	}

	var req FacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var facility model.Facility
	err = h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).First(&facility).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Facility not found")
		}
		return response.InternalServerError(c, "Failed to fetch facility")
	}

	facility.Name = validation.SanitizeString(req.Name)
	facility.Description = req.Description
	facility.ImageURL = req.ImageURL

	if err := h.db.Save(&facility).Error; err != nil {
		return response.InternalServerError(c, "Failed to update facility")
	}

	return response.Success(c, facility)
}

// DeleteFacility handles DELETE /api/v1/facilities/:id
func (h *FacilityHandler) DeleteFacility(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid facility id")
	}

	result := h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).Delete(&model.Facility{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete facility")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Facility not found")
	}

	return response.NoContent(c)
}
