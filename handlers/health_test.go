package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealthChecker struct {
	err error
}

func (s stubHealthChecker) HealthCheck() error {
	return s.err
}

func pingApp(checker HealthChecker) *fiber.App {
	app := fiber.New()
	app.Get("/ping", Health(checker, nil))
	return app
}

func TestHealthOK(t *testing.T) {
	resp, err := pingApp(stubHealthChecker{}).Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Status string            `json:"status"`
		Data   map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, "ok", envelope.Data["database"])
	// Redis not configured for this instance
	assert.Equal(t, "disabled", envelope.Data["redis"])
}

func TestHealthDatabaseDown(t *testing.T) {
	checker := stubHealthChecker{err: errors.New("connection refused")}

	resp, err := pingApp(checker).Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
