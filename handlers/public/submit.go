package public

import (
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/services/storage"
	"github.com/collegehub/cms-api/utils/pdfvalidation"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// ApplicationRequest represents the public application submission body
type ApplicationRequest struct {
	CollegeID uint     `json:"college_id" validate:"required"`
	Name      string   `json:"name" validate:"required,min=2,max=255"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone" validate:"omitempty,max=50"`
	CourseID  *uint    `json:"course_id"`
	Documents []string `json:"documents" validate:"omitempty,dive,url"`
}

// EnquiryRequest represents the public enquiry submission body
type EnquiryRequest struct {
	CollegeID *uint  `json:"college_id"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Message   string `json:"message" validate:"required,min=5"`
}

// SubmitHandler handles the public write API
type SubmitHandler struct {
	db        *gorm.DB
	store     storage.Storage
	validator *validation.Validator
}

// NewSubmitHandler creates a new submit handler. store receives uploaded
// application documents.
func NewSubmitHandler(db *gorm.DB, store storage.Storage) *SubmitHandler {
	return &SubmitHandler{
		db:        db,
		store:     store,
		validator: validation.NewValidator(),
	}
}

// SubmitApplication handles POST /api/v1/public/applications/submit.
// The referenced college must exist and, when a course is given, it must
// belong to that college; otherwise nothing is inserted.
func (h *SubmitHandler) SubmitApplication(c *fiber.Ctx) error {
	var req ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var college model.College
	err := h.db.Where("id = ? AND is_active = ?", req.CollegeID, true).First(&college).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.BadRequest(c, "Unknown college")
		}
		return response.InternalServerError(c, "Failed to verify college")
	}

	if req.CourseID != nil {
		var count int64
		err := h.db.Model(&model.Course{}).
			Where("id = ? AND college_id = ?", *req.CourseID, req.CollegeID).
			Count(&count).Error
		if err != nil {
			return response.InternalServerError(c, "Failed to verify course")
		}
		if count == 0 {
			return response.BadRequest(c, "Course does not belong to the selected college")
		}
	}

	var documents datatypes.JSON
	if len(req.Documents) > 0 {
		raw, err := json.Marshal(req.Documents)
		if err != nil {
			return response.BadRequest(c, "Invalid documents payload")
		}
		documents = datatypes.JSON(raw)
	}

	application := model.Application{
		CollegeID: req.CollegeID,
		Name:      validation.SanitizeString(req.Name),
		Email:     validation.SanitizeString(req.Email),
		Phone:     req.Phone,
		CourseID:  req.CourseID,
		Documents: documents,
		Status:    model.ApplicationStatusPending,
	}
	if err := h.db.Create(&application).Error; err != nil {
		return response.InternalServerError(c, "Failed to submit application")
	}

	return response.Created(c, application)
}

// UploadDocument handles POST /api/v1/public/applications/documents.
// Accepts one PDF, validates it against the application document limits
// and returns the stored URL for inclusion in a later submit.
func (h *SubmitHandler) UploadDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("document")
	if err != nil {
		return response.BadRequest(c, "Missing document file")
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

	result, err := pdfvalidation.ValidatePDFBytes(data, pdfvalidation.ApplicationDocumentLimits)
	if err != nil {
		return response.InternalServerError(c, "Failed to validate PDF")
	}
	if !result.Valid {
		return response.BadRequest(c, result.Error)
	}

	key := storage.GenerateKey("applications", file.Filename)
	url, err := h.store.Save(c.Context(), key, data, "application/pdf")
	if err != nil {
		return response.InternalServerError(c, "Failed to store document")
	}

	return response.Created(c, fiber.Map{
		"url":        url,
		"page_count": result.PageCount,
	})
}

// SubmitEnquiry handles POST /api/v1/public/enquiries/submit. The college
// reference is optional; when present it must exist.
func (h *SubmitHandler) SubmitEnquiry(c *fiber.Ctx) error {
	var req EnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.CollegeID != nil {
		var count int64
		err := h.db.Model(&model.College{}).
			Where("id = ? AND is_active = ?", *req.CollegeID, true).
			Count(&count).Error
		if err != nil {
			return response.InternalServerError(c, "Failed to verify college")
		}
		if count == 0 {
			return response.BadRequest(c, "Unknown college")
		}
	}

	enquiry := model.Enquiry{
		CollegeID: req.CollegeID,
		Name:      validation.SanitizeString(req.Name),
		Email:     validation.SanitizeString(req.Email),
		Phone:     req.Phone,
		Message:   validation.SanitizeString(req.Message),
	}
	if err := h.db.Create(&enquiry).Error; err != nil {
		return response.InternalServerError(c, "Failed to submit enquiry")
	}

	return response.Created(c, enquiry)
}
