package public

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
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

func setupSubmitApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	h := NewSubmitHandler(db, nil)
	app := fiber.New()
	app.Post("/applications/submit", h.SubmitApplication)
	app.Post("/enquiries/submit", h.SubmitEnquiry)
	return app, mock
}

func errorMessage(t *testing.T, body io.Reader) string {
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	var envelope response.Response
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Message
}

func TestSubmitApplicationUnknownCollege(t *testing.T) {
	app, mock := setupSubmitApp(t)

	mock.ExpectQuery(`SELECT (.+) FROM "colleges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest("POST", "/applications/submit",
		strings.NewReader(`{"college_id":9,"name":"Asha Verma","email":"asha@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown college", errorMessage(t, resp.Body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationCourseFromOtherCollege(t *testing.T) {
	app, mock := setupSubmitApp(t)

	mock.ExpectQuery(`SELECT (.+) FROM "colleges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(9, "Woods College", true))
	// Course 5 does not belong to college 9
	mock.ExpectQuery(`SELECT count\(\*\) FROM "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := httptest.NewRequest("POST", "/applications/submit",
		strings.NewReader(`{"college_id":9,"name":"Asha Verma","email":"asha@example.com","course_id":5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Nothing was inserted
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Course does not belong to the selected college", errorMessage(t, resp.Body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationValidationFailure(t *testing.T) {
	app, _ := setupSubmitApp(t)

	req := httptest.NewRequest("POST", "/applications/submit",
		strings.NewReader(`{"name":"Asha Verma","email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSubmitEnquiryUnknownCollege(t *testing.T) {
	app, mock := setupSubmitApp(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "colleges"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := httptest.NewRequest("POST", "/enquiries/submit",
		strings.NewReader(`{"college_id":9,"name":"Asha Verma","email":"asha@example.com","message":"Hostel fees?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown college", errorMessage(t, resp.Body))
	assert.NoError(t, mock.ExpectationsWereMet())
}
