package course

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/slug"
	"github.com/collegehub/cms-api/utils/validation"
)

// CourseHandler handles course management requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CourseRequest represents the request body for creating or updating a course
type CourseRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Slug        string `json:"slug" validate:"omitempty,max=160"`
	Level       string `json:"level" validate:"omitempty,max=50"`
	Department  string `json:"department" validate:"omitempty,max=255"`
	Duration    string `json:"duration" validate:"omitempty,max=255"`
	Fees        string `json:"fees" validate:"omitempty,max=255"`
	Eligibility string `json:"eligibility"`
	Overview    string `json:"overview"`
	IsActive    *bool  `json:"is_active"`
}

// CoursePageRequest represents the request body for the course detail page
type CoursePageRequest struct {
	Curriculum          []interface{} `json:"curriculum"`
	CareerOpportunities string        `json:"career_opportunities"`
	AdmissionProcess    string        `json:"admission_process"`
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Course{}).Where("college_id = ?", collegeID)
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR department ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses")
	}

	pagination := response.CalculatePagination(page, limit, total)
	offset := (pagination.CurrentPage - 1) * pagination.PerPage

	var courses []model.Course
	if err := query.Order("id ASC").Limit(pagination.PerPage).Offset(offset).Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, pagination)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var course model.Course
	err = h.db.Preload("Details").
		Where("id = ? AND college_id = ?", uint(id), collegeID).
		First(&course).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	courseSlug := req.Slug
	if courseSlug == "" {
		courseSlug = slug.Make(req.Name)
	}

	course := model.Course{
		CollegeID:   collegeID,
		Name:        validation.SanitizeString(req.Name),
		Slug:        courseSlug,
		Level:       req.Level,
		Department:  req.Department,
		Duration:    req.Duration,
		Fees:        req.Fees,
		Eligibility: req.Eligibility,
		Overview:    req.Overview,
		IsActive:    true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.db.Create(&course).Error; err != nil {
		return response.Conflict(c, "A course with this slug already exists for the college")
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	err = h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).First(&course).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	course.Name = validation.SanitizeString(req.Name)
	if req.Slug != "" {
		course.Slug = req.Slug
	}
	course.Level = req.Level
	course.Department = req.Department
	course.Duration = req.Duration
	course.Fees = req.Fees
	course.Eligibility = req.Eligibility
	course.Overview = req.Overview
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.Conflict(c, "A course with this slug already exists for the college")
	}

	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	result := h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).Delete(&model.Course{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Course not found")
	}

	return response.NoContent(c)
}

// UpsertCoursePage handles PUT /api/v1/courses/:id/page, creating or
// replacing the long-form detail content.
func (h *CourseHandler) UpsertCoursePage(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var req CoursePageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var course model.Course
	err = h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).First(&course).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var curriculum datatypes.JSON
	if req.Curriculum != nil {
		raw, err := json.Marshal(req.Curriculum)
		if err != nil {
			return response.BadRequest(c, "Invalid curriculum payload")
		}
		curriculum = datatypes.JSON(raw)
	}

	var detail model.CoursePage
	err = h.db.Where("course_id = ?", course.ID).First(&detail).Error
	switch {
	case err == nil:
		detail.Curriculum = curriculum
		detail.CareerOpportunities = req.CareerOpportunities
		detail.AdmissionProcess = req.AdmissionProcess
		if err := h.db.Save(&detail).Error; err != nil {
			return response.InternalServerError(c, "Failed to update course page")
		}
		return response.Success(c, detail)
	case err == gorm.ErrRecordNotFound:
		detail = model.CoursePage{
			CourseID:            course.ID,
			Curriculum:          curriculum,
			CareerOpportunities: req.CareerOpportunities,
			AdmissionProcess:    req.AdmissionProcess,
		}
		if err := h.db.Create(&detail).Error; err != nil {
			return response.InternalServerError(c, "Failed to create course page")
		}
		return response.Created(c, detail)
	default:
		return response.InternalServerError(c, "Failed to fetch course page")
	}
}
