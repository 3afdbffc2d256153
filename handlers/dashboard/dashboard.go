package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
)

// DashboardHandler serves the admin dashboard counts
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Counts handles GET /api/v1/dashboard
func (h *DashboardHandler) Counts(c *fiber.Ctx) error {
	collegeID, ok := middleware.SelectedCollegeID(c)
	if !ok {
		return response.SelectCollege(c)
	}

	counts := fiber.Map{}
	scoped := []struct {
		name  string
		model interface{}
	}{
		{"pages", &model.Page{}},
		{"courses", &model.Course{}},
		{"faculty", &model.Faculty{}},
		{"facilities", &model.Facility{}},
		{"activities", &model.Activity{}},
		{"applications", &model.Application{}},
	}
	for _, entry := range scoped {
		var n int64
		if err := h.db.Model(entry.model).Where("college_id = ?", collegeID).Count(&n).Error; err != nil {
			return response.InternalServerError(c, "Failed to compute dashboard counts")
		}
		counts[entry.name] = n
	}

	var pending int64
	err := h.db.Model(&model.Application{}).
		Where("college_id = ? AND status = ?", collegeID, model.ApplicationStatusPending).
		Count(&pending).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard counts")
	}
	counts["pending_applications"] = pending

	var enquiries int64
	err = h.db.Model(&model.Enquiry{}).
		Where("college_id = ? OR college_id IS NULL", collegeID).
		Count(&enquiries).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard counts")
	}
	counts["enquiries"] = enquiries

	return response.Success(c, counts)
}
