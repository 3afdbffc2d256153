package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, handler fiber.Handler) (int, Response) {
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope Response
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func TestSuccessEnvelope(t *testing.T) {
	status, envelope := doRequest(t, func(c *fiber.Ctx) error {
		return Success(c, fiber.Map{"name": "Woods College"})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "success", envelope.Status)
	assert.Nil(t, envelope.Error)
	require.NotNil(t, envelope.Data)
}

func TestSelectCollegeEnvelope(t *testing.T) {
	status, envelope := doRequest(t, SelectCollege)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "error", envelope.Status)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "SELECT_COLLEGE", envelope.Error.Code)
	assert.Equal(t, "No college selected", envelope.Error.Message)
}

func TestErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name       string
		handler    fiber.Handler
		wantStatus int
		wantCode   string
	}{
		{"not found", func(c *fiber.Ctx) error { return NotFound(c, "") }, fiber.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", func(c *fiber.Ctx) error { return Unauthorized(c, "") }, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(c *fiber.Ctx) error { return Forbidden(c, "") }, fiber.StatusForbidden, "FORBIDDEN"},
		{"conflict", func(c *fiber.Ctx) error { return Conflict(c, "duplicate") }, fiber.StatusConflict, "CONFLICT"},
		{"too many", func(c *fiber.Ctx) error { return TooManyRequests(c, "") }, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", func(c *fiber.Ctx) error { return InternalServerError(c, "") }, fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, envelope := doRequest(t, tc.handler)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, "error", envelope.Status)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tc.wantCode, envelope.Error.Code)
			assert.NotEmpty(t, envelope.Error.Message)
		})
	}
}

func TestCalculatePagination(t *testing.T) {
	meta := CalculatePagination(2, 10, 25)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 10, meta.PerPage)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	// Exact division
	meta = CalculatePagination(1, 10, 30)
	assert.Equal(t, 3, meta.TotalPages)

	// Invalid inputs fall back to defaults
	meta = CalculatePagination(0, 0, 5)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 10, meta.PerPage)
	assert.Equal(t, 1, meta.TotalPages)

	// Empty result set
	meta = CalculatePagination(1, 10, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
