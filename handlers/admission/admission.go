package admission

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// valid application status transitions target set
var applicationStatuses = map[string]bool{
	model.ApplicationStatusPending:  true,
	model.ApplicationStatusReviewed: true,
	model.ApplicationStatusAccepted: true,
	model.ApplicationStatusRejected: true,
}

// AdmissionHandler handles admission info and application review
type AdmissionHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewAdmissionHandler creates a new admission handler
func NewAdmissionHandler(db *gorm.DB) *AdmissionHandler {
	return &AdmissionHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// AdmissionRequest represents the request body for admission info
type AdmissionRequest struct {
	ProcedureText   string `json:"procedure_text"`
	EligibilityText string `json:"eligibility_text"`
}

// StatusRequest represents the request body for an application status update
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GetAdmission handles GET /api/v1/admissions
func (h *AdmissionHandler) GetAdmission(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var admission model.Admission
	err := h.db.Where("college_id = ?", collegeID).First(&admission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Admission info not found")
		}
		return response.InternalServerError(c, "Failed to fetch admission info")
	}

	return response.Success(c, admission)
}

// UpsertAdmission handles PUT /api/v1/admissions
func (h *AdmissionHandler) UpsertAdmission(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var req AdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var admission model.Admission
	err := h.db.Where("college_id = ?", collegeID).First(&admission).Error
	switch {
	case err == nil:
		admission.ProcedureText = req.ProcedureText
		admission.EligibilityText = req.EligibilityText
		if err := h.db.Save(&admission).Error; err != nil {
			return response.InternalServerError(c, "Failed to update admission info")
		}
		return response.Success(c, admission)
	case err == gorm.ErrRecordNotFound:
		admission = model.Admission{
			CollegeID:       collegeID,
			ProcedureText:   req.ProcedureText,
			EligibilityText: req.EligibilityText,
		}
		if err := h.db.Create(&admission).Error; err != nil {
			return response.InternalServerError(c, "Failed to create admission info")
		}
		return response.Created(c, admission)
	default:
		return response.InternalServerError(c, "Failed to fetch admission info")
	}
}

// ListApplications handles GET /api/v1/applications
func (h *AdmissionHandler) ListApplications(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Application{}).Where("college_id = ?", collegeID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count applications")
	}

	pagination := response.CalculatePagination(page, limit, total)
	offset := (pagination.CurrentPage - 1) * pagination.PerPage

	var applications []model.Application
	err := query.Preload("Course").Order("created_at DESC").
		Limit(pagination.PerPage).Offset(offset).
		Find(&applications).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch applications")
	}

	return response.Paginated(c, applications, pagination)
}

// UpdateApplicationStatus handles PATCH /api/v1/applications/:id/status
func (h *AdmissionHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application id")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if !applicationStatuses[req.Status] {
		return response.BadRequest(c, "Unknown application status")
	}

	var application model.Application
	err = h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).First(&application).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to fetch application")
	}

	application.Status = req.Status
	if err := h.db.Save(&application).Error; err != nil {
		return response.InternalServerError(c, "Failed to update application")
	}

	return response.Success(c, application)
}

// DeleteApplication handles DELETE /api/v1/applications/:id
func (h *AdmissionHandler) DeleteApplication(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application id")
	}

	result := h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).Delete(&model.Application{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete application")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Application not found")
	}

	return response.NoContent(c)
}

// ListEnquiries handles GET /api/v1/enquiries. Enquiries without a college
// belong to the group site and show up for every admin.
func (h *AdmissionHandler) ListEnquiries(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var enquiries []model.Enquiry
	err := h.db.Where("college_id = ? OR college_id IS NULL", collegeID).
		Order("created_at DESC").
		Find(&enquiries).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch enquiries")
	}

	return response.Success(c, enquiries)
}

// DeleteEnquiry handles DELETE /api/v1/enquiries/:id
func (h *AdmissionHandler) DeleteEnquiry(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid enquiry id")
	}

	result := h.db.Where("id = ? AND (college_id = ? OR college_id IS NULL)", uint(id), collegeID).
		Delete(&model.Enquiry{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete enquiry")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Enquiry not found")
	}

	return response.NoContent(c)
}
