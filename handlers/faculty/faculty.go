package faculty

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// FacultyHandler handles faculty management requests
type FacultyHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(db *gorm.DB) *FacultyHandler {
	return &FacultyHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// FacultyRequest represents the request body for creating or updating a
// faculty member
type FacultyRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Designation   string `json:"designation" validate:"omitempty,max=255"`
	Qualification string `json:"qualification" validate:"omitempty,max=255"`
	PhotoURL      string `json:"photo_url" validate:"omitempty,max=1024"`
	Bio           string `json:"bio"`
	IsActive      *bool  `json:"is_active"`
}

// ListFaculty handles GET /api/v1/faculty
func (h *FacultyHandler) ListFaculty(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Faculty{}).Where("college_id = ?", collegeID)
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR designation ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count faculty")
	}

	pagination := response.CalculatePagination(page, limit, total)
	offset := (pagination.CurrentPage - 1) * pagination.PerPage

	var faculty []model.Faculty
	if err := query.Order("id ASC").Limit(pagination.PerPage).Offset(offset).Find(&faculty).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch faculty")
	}

	return response.Paginated(c, faculty, pagination)
}

// CreateFaculty handles POST /api/v1/faculty
func (h *FacultyHandler) CreateFaculty(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var req FacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	member := model.Faculty{
		CollegeID:     collegeID,
		Name:          validation.SanitizeString(req.Name),
		Designation:   req.Designation,
		Qualification: req.Qualification,
		PhotoURL:      req.PhotoURL,
		Bio:           req.Bio,
		IsActive:      true,
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := h.db.Create(&member).Error; err != nil {
		return response.InternalServerError(c, "Failed to create faculty member")
	}

	return response.Created(c, member)
}

// UpdateFaculty handles PUT /api/v1/faculty/:id
func (h *FacultyHandler) UpdateFaculty(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid faculty id")
	}

	var req FacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var member model.Faculty
	err = h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Faculty member not found")
		}
		return response.InternalServerError(c, "Failed to fetch faculty member")
	}

	member.Name = validation.SanitizeString(req.Name)
	member.Designation = req.Designation
	member.Qualification = req.Qualification
	member.PhotoURL = req.PhotoURL
	member.Bio = req.Bio
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := h.db.Save(&member).Error; err != nil {
		return response.InternalServerError(c, "Failed to update faculty member")
	}

	return response.Success(c, member)
}

// DeleteFaculty handles DELETE /api/v1/faculty/:id
func (h *FacultyHandler) DeleteFaculty(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid faculty id")
	}

	result := h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).Delete(&model.Faculty{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete faculty member")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Faculty member not found")
	}

	return response.NoContent(c)
}
