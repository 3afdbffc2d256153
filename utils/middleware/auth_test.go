package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/auth"
)

func setupAuthTest(t *testing.T) (*fiber.App, *auth.JWTManager, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "cms-api-test",
	})

	m := NewAuthMiddleware(jwtManager, db)
	app := fiber.New()
	app.Get("/protected", m.Required(), func(c *fiber.Ctx) error {
		id, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		sid, _ := GetSessionID(c)
		return c.JSON(fiber.Map{"id": id, "role": role, "sid": sid})
	})
	app.Get("/super", m.Required(), m.RequireSuperAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, jwtManager, mock
}

func userRows(id uint, role string, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role", "is_active"}).
		AddRow(id, "admin@example.com", role, active)
}

func TestRequiredRejectsMissingCookie(t *testing.T) {
	app, _, _ := setupAuthTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredRejectsBadToken(t *testing.T) {
	app, _, _ := setupAuthTest(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", SessionCookieName+"=garbage")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredAcceptsValidSession(t *testing.T) {
	app, jwtManager, mock := setupAuthTest(t)

	token, _, err := jwtManager.GenerateSessionToken(42, "admin@example.com", model.RoleSuperAdmin)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(42, model.RoleSuperAdmin, true))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", SessionCookieName+"="+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequiredRejectsDisabledAccount(t *testing.T) {
	app, jwtManager, mock := setupAuthTest(t)

	token, _, err := jwtManager.GenerateSessionToken(42, "admin@example.com", model.RoleSuperAdmin)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(42, model.RoleSuperAdmin, false))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", SessionCookieName+"="+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireSuperAdminBlocksCollegeAdmin(t *testing.T) {
	app, jwtManager, mock := setupAuthTest(t)

	token, _, err := jwtManager.GenerateSessionToken(7, "admin@example.com", model.RoleCollegeAdmin)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(7, model.RoleCollegeAdmin, true))

	req := httptest.NewRequest("GET", "/super", nil)
	req.Header.Set("Cookie", SessionCookieName+"="+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
