package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/auth"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// UserHandler handles admin account management. All routes are restricted
// to super admins in the router.
type UserHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateUserRequest represents the request body for creating an admin account
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=SUPER_ADMIN COLLEGE_ADMIN"`
	CollegeID *uint  `json:"college_id"`
}

// UpdateUserRequest represents the request body for updating an admin account
type UpdateUserRequest struct {
	Name      string  `json:"name" validate:"omitempty,min=2,max=255"`
	Password  string  `json:"password" validate:"omitempty,min=8"`
	Role      string  `json:"role" validate:"omitempty,oneof=SUPER_ADMIN COLLEGE_ADMIN"`
	CollegeID *uint   `json:"college_id"`
	IsActive  *bool   `json:"is_active"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.User{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	var users []model.User
	err := query.Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	return response.Paginated(c, users, response.CalculatePagination(page, limit, total))
}

// CreateUser handles POST /api/v1/users. College admins must be scoped to a
// college; super admins must not be.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleCollegeAdmin
	}
	if role == model.RoleCollegeAdmin {
		if req.CollegeID == nil {
			return response.BadRequest(c, "College admins require a college")
		}
		var count int64
		if err := h.db.Model(&model.College{}).Where("id = ?", *req.CollegeID).Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to verify college")
		}
		if count == 0 {
			return response.BadRequest(c, "Unknown college")
		}
	} else {
		req.CollegeID = nil
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	user := model.User{
		Name:         validation.SanitizeString(req.Name),
		Email:        validation.SanitizeString(req.Email),
		PasswordHash: hash,
		Role:         role,
		CollegeID:    req.CollegeID,
		IsActive:     true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return response.Conflict(c, "A user with this email already exists")
	}

	return response.Created(c, user)
}

// UpdateUser handles PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	if err := h.db.First(&user, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	if req.Name != "" {
		user.Name = validation.SanitizeString(req.Name)
	}
	if req.Email != nil {
		user.Email = validation.SanitizeString(*req.Email)
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return response.BadRequest(c, "Password must be at least 8 characters")
		}
		user.PasswordHash = hash
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.CollegeID != nil {
		user.CollegeID = req.CollegeID
	}
	if user.Role == model.RoleSuperAdmin {
		user.CollegeID = nil
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.db.Save(&user).Error; err != nil {
		return response.Conflict(c, "A user with this email already exists")
	}

	return response.Success(c, user)
}

// DeleteUser handles DELETE /api/v1/users/:id. Accounts cannot delete
// themselves, which keeps at least the acting super admin alive.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	if actingID, ok := middleware.GetUserID(c); ok && actingID == uint(id) {
		return response.BadRequest(c, "You cannot delete your own account")
	}

	result := h.db.Delete(&model.User{}, uint(id))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete user")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "User not found")
	}

	return response.NoContent(c)
}
