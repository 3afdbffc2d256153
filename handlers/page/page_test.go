package page

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/collegehub/cms-api/utils/response"
)

func setupPageApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	h := NewPageHandler(db)

	withSelection := func(c *fiber.Ctx) error {
		c.Locals("selected_college_id", uint(1))
		return c.Next()
	}

	app := fiber.New()
	app.Get("/pages/:id", withSelection, h.GetPage)
	app.Delete("/pages/:id", withSelection, h.DeletePage)
	app.Get("/unselected/pages/:id", h.GetPage)
	return app, mock
}

func decodeEnvelope(t *testing.T, body io.Reader) response.Response {
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	var envelope response.Response
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope
}

func TestGetPageOwnedByOtherCollegeIsNotFound(t *testing.T) {
	app, mock := setupPageApp(t)

	// The scoped WHERE clause finds nothing for a foreign page id
	mock.ExpectQuery(`SELECT (.+) FROM "pages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/pages/42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	envelope := decodeEnvelope(t, resp.Body)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPageWithoutSelectionIsSelectCollege(t *testing.T) {
	app, _ := setupPageApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/unselected/pages/42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	envelope := decodeEnvelope(t, resp.Body)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "SELECT_COLLEGE", envelope.Error.Code)
}

func TestGetPageInvalidID(t *testing.T) {
	app, _ := setupPageApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/pages/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeletePageMissingRowIsNotFound(t *testing.T) {
	app, mock := setupPageApp(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "pages"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	resp, err := app.Test(httptest.NewRequest("DELETE", "/pages/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
