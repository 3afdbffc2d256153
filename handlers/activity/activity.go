package activity

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// ActivityHandler handles event and news entries
type ActivityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(db *gorm.DB) *ActivityHandler {
	return &ActivityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// ActivityRequest represents the request body for an activity
type ActivityRequest struct {
	Type        string     `json:"type" validate:"omitempty,max=50"`
	Title       string     `json:"title" validate:"required,min=2,max=255"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url" validate:"omitempty,max=1024"`
	EventDate   *time.Time `json:"event_date"`
}

// ListActivities handles GET /api/v1/activities
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	query := h.db.Model(&model.Activity{}).Where("college_id = ?", collegeID)
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var activities []model.Activity
	if err := query.Order("event_date DESC NULLS LAST, id DESC").Find(&activities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch activities")
	}

	return response.Success(c, activities)
}

// CreateActivity handles POST /api/v1/activities
func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	activity := model.Activity{
		CollegeID:   collegeID,
		Type:        req.Type,
		Title:       validation.SanitizeString(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		EventDate:   req.EventDate,
	}
	if err := h.db.Create(&activity).Error; err != nil {
		return response.InternalServerError(c, "Failed to create activity")
	}

	return response.Created(c, activity)
}

// UpdateActivity handles PUT /api/v1/activities/:id
func (h *ActivityHandler) UpdateActivity(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid activity id")
	}

	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var activity model.Activity
	err = h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).First(&activity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Activity not found")
		}
		return response.InternalServerError(c, "Failed to fetch activity")
	}

	activity.Type = req.Type
	activity.Title = validation.SanitizeString(req.Title)
	activity.Description = req.Description
	activity.ImageURL = req.ImageURL
	activity.EventDate = req.EventDate

	if err := h.db.Save(&activity).Error; err != nil {
		return response.InternalServerError(c, "Failed to update activity")
	}

	return response.Success(c, activity)
}

// DeleteActivity handles DELETE /api/v1/activities/:id
func (h *ActivityHandler) DeleteActivity(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid activity id")
	}

	result := h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).Delete(&model.Activity{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete activity")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Activity not found")
	}

	return response.NoContent(c)
}
