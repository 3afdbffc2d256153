package placement

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// PlacementHandler handles placement records, placed students and recruiters
type PlacementHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewPlacementHandler creates a new placement handler
func NewPlacementHandler(db *gorm.DB) *PlacementHandler {
	return &PlacementHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// PlacementRequest represents the request body for a placement year record
type PlacementRequest struct {
	Year                int      `json:"year" validate:"required,min=1990,max=2100"`
	HighestPackage      *float64 `json:"highest_package" validate:"omitempty,min=0"`
	AveragePackage      *float64 `json:"average_package" validate:"omitempty,min=0"`
	PlacementPercentage *float64 `json:"placement_percentage" validate:"omitempty,min=0,max=100"`
}

// StudentPlacementRequest represents the request body for a placed student
type StudentPlacementRequest struct {
	StudentName string   `json:"student_name" validate:"required,min=2,max=255"`
	CompanyName string   `json:"company_name" validate:"omitempty,max=255"`
	Package     *float64 `json:"package" validate:"omitempty,min=0"`
}

// RecruiterRequest represents the request body for a recruiter
type RecruiterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Industry string `json:"industry" validate:"omitempty,max=255"`
	LogoURL  string `json:"logo_url" validate:"omitempty,max=1024"`
}

// ListPlacements handles GET /api/v1/placements
func (h *PlacementHandler) ListPlacements(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var placements []model.Placement
	err := h.db.Preload("StudentPlacements").Preload("Recruiters").
		Where("college_id = ?", collegeID).
		Order("year DESC").
		Find(&placements).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch placements")
	}

	return response.Success(c, placements)
}

// CreatePlacement handles POST /api/v1/placements
func (h *PlacementHandler) CreatePlacement(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	var req PlacementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	placement := model.Placement{
		CollegeID:           collegeID,
		Year:                req.Year,
		HighestPackage:      req.HighestPackage,
		AveragePackage:      req.AveragePackage,
		PlacementPercentage: req.PlacementPercentage,
	}
	if err := h.db.Create(&placement).Error; err != nil {
		return response.InternalServerError(c, "Failed to create placement record")
	}

	return response.Created(c, placement)
}

// UpdatePlacement handles PUT /api/v1/placements/:id
func (h *PlacementHandler) UpdatePlacement(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid placement id")
	}

	var req PlacementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var placement model.Placement
	err = h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).First(&placement).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Placement record not found")
		}
		return response.InternalServerError(c, "Failed to fetch placement record")
	}

	placement.Year = req.Year
	placement.HighestPackage = req.HighestPackage
	placement.AveragePackage = req.AveragePackage
	placement.PlacementPercentage = req.PlacementPercentage

	if err := h.db.Save(&placement).Error; err != nil {
		return response.InternalServerError(c, "Failed to update placement record")
	}

	return response.Success(c, placement)
}

// DeletePlacement handles DELETE /api/v1/placements/:id
func (h *PlacementHandler) DeletePlacement(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid placement id")
	}

	result := h.db.Where("id = ? AND college_id = ?", uint(id), collegeID).Delete(&model.Placement{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete placement record")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Placement record not found")
	}

	return response.NoContent(c)
}

// findScopedPlacement loads a placement owned by the college
func (h *PlacementHandler) findScopedPlacement(collegeID, placementID uint) (*model.Placement, error) {
	var placement model.Placement
	err := h.db.Where("id = ? AND college_id = ?", placementID, collegeID).First(&placement).Error
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

// AddStudent handles POST /api/v1/placements/:id/students
func (h *PlacementHandler) AddStudent(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid placement id")
	}

	var req StudentPlacementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if _, err := h.findScopedPlacement(collegeID, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Placement record not found")
		}
		return response.InternalServerError(c, "Failed to fetch placement record")
	}

	student := model.StudentPlacement{
		PlacementID: uint(id),
		StudentName: validation.SanitizeString(req.StudentName),
		CompanyName: req.CompanyName,
		Package:     req.Package,
	}
	if err := h.db.Create(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to add placed student")
	}

	return response.Created(c, student)
}

// RemoveStudent handles DELETE /api/v1/placements/students/:id
func (h *PlacementHandler) RemoveStudent(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid student placement id")
	}

	result := h.db.Where(
		"id IN (?)",
		h.db.Model(&model.StudentPlacement{}).Select("student_placements.id").
			Joins("JOIN placements ON placements.id = student_placements.placement_id").
			Where("student_placements.id = ? AND placements.college_id = ?", uint(id), collegeID),
	).Delete(&model.StudentPlacement{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to remove placed student")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Placed student not found")
	}

	return response.NoContent(c)
}

// ListRecruiters handles GET /api/v1/recruiters. Recruiters are global;
// industries come from the lookup table.
func (h *PlacementHandler) ListRecruiters(c *fiber.Ctx) error {
	var recruiters []model.Recruiter
	if err := h.db.Order("name ASC").Find(&recruiters).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch recruiters")
	}

	var industries []model.RecruiterIndustry
	if err := h.db.Order("name ASC").Find(&industries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch industries")
	}

	return response.Success(c, fiber.Map{
		"recruiters": recruiters,
		"industries": industries,
	})
}

// CreateRecruiter handles POST /api/v1/recruiters. A new industry tag is
// added to the lookup table on first use.
func (h *PlacementHandler) CreateRecruiter(c *fiber.Ctx) error {
	var req RecruiterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	recruiter := model.Recruiter{
		Name:     validation.SanitizeString(req.Name),
		Industry: req.Industry,
		LogoURL:  req.LogoURL,
	}
	if err := h.db.Create(&recruiter).Error; err != nil {
		return response.InternalServerError(c, "Failed to create recruiter")
	}

	if recruiter.Industry != "" {
		h.db.Where(model.RecruiterIndustry{Name: recruiter.Industry}).
			FirstOrCreate(&model.RecruiterIndustry{Name: recruiter.Industry})
	}

	return response.Created(c, recruiter)
}

// AttachRecruiter handles POST /api/v1/placements/:id/recruiters/:recruiterID
func (h *PlacementHandler) AttachRecruiter(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid placement id")
	}
	recruiterID, err := strconv.ParseUint(c.Params("recruiterID"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid recruiter id")
	}

	placement, err := h.findScopedPlacement(collegeID, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Placement record not found")
		}
		return response.InternalServerError(c, "Failed to fetch placement record")
	}

	var recruiter model.Recruiter
	if err := h.db.First(&recruiter, uint(recruiterID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Recruiter not found")
		}
		return response.InternalServerError(c, "Failed to fetch recruiter")
	}

	if err := h.db.Model(placement).Association("Recruiters").Append(&recruiter); err != nil {
		return response.InternalServerError(c, "Failed to attach recruiter")
	}

	return response.SuccessWithMessage(c, "Recruiter attached", nil)
}

// DetachRecruiter handles DELETE /api/v1/placements/:id/recruiters/:recruiterID
func (h *PlacementHandler) DetachRecruiter(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid placement id")
	}
	recruiterID, err := strconv.ParseUint(c.Params("recruiterID"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid recruiter id")
	}

	placement, err := h.findScopedPlacement(collegeID, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Placement record not found")
		}
		return response.InternalServerError(c, "Failed to fetch placement record")
	}

	recruiter := model.Recruiter{ID: uint(recruiterID)}
	if err := h.db.Model(placement).Association("Recruiters").Delete(&recruiter); err != nil {
		return response.InternalServerError(c, "Failed to detach recruiter")
	}

	return response.NoContent(c)
}
