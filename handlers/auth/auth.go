package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/auth"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/session"
	"github.com/collegehub/cms-api/utils/validation"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	db         *gorm.DB
	jwtManager *auth.JWTManager
	sessions   *session.Store
	bruteForce *middleware.BruteForceProtection
	validator  *validation.Validator
	secure     bool
}

// NewAuthHandler creates a new auth handler. secure controls the session
// cookie's Secure flag (off in development over plain HTTP).
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, sessions *session.Store, bruteForce *middleware.BruteForceProtection, secure bool) *AuthHandler {
	return &AuthHandler{
		db:         db,
		jwtManager: jwtManager,
		sessions:   sessions,
		bruteForce: bruteForce,
		validator:  validation.NewValidator(),
		secure:     secure,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	err := h.db.Where("email = ?", validation.SanitizeString(req.Email)).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Identical answer for unknown email and wrong password
			h.bruteForce.RecordFailedAttempt(c, c.IP())
			return response.Unauthorized(c, "Invalid email or password")
		}
		return response.InternalServerError(c, "Failed to load user")
	}

	if !user.IsActive {
		return response.Unauthorized(c, "Account is disabled")
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		h.bruteForce.RecordFailedAttempt(c, c.IP())
		return response.Unauthorized(c, "Invalid email or password")
	}

	h.bruteForce.RecordSuccessfulAttempt(c, c.IP())

	token, _, err := h.jwtManager.GenerateSessionToken(user.ID, user.Email, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		MaxAge:   int(h.jwtManager.SessionTTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return response.SuccessWithMessage(c, "Logged in", fiber.Map{
		"user": user,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid, ok := middleware.GetSessionID(c); ok {
		// Drop the server-side session state (selected college)
		h.sessions.Delete(c.Context(), sid)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return response.SuccessWithMessage(c, "Logged out", nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	selectedID, hasSelection := middleware.SelectedCollegeID(c)
	payload := fiber.Map{
		"user": user,
	}
	if hasSelection {
		payload["selected_college_id"] = selectedID
	}
	return response.Success(c, payload)
}
