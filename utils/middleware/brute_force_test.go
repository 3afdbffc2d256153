package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/cms-api/utils/cache"
	"github.com/collegehub/cms-api/utils/response"
)

func setupBruteForceApp(t *testing.T) (*fiber.App, *BruteForceProtection) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	bf := NewBruteForceProtection(rc)

	app := fiber.New()
	app.Post("/login", bf.CheckAndRecordAttempt(), func(c *fiber.Ctx) error {
		bf.RecordFailedAttempt(c, c.IP())
		return response.Unauthorized(c, "Invalid credentials")
	})
	app.Post("/reset", func(c *fiber.Ctx) error {
		bf.RecordSuccessfulAttempt(c, c.IP())
		return response.Success(c, nil)
	})
	return app, bf
}

func TestBruteForceLockoutAfterFiveFailures(t *testing.T) {
	app, _ := setupBruteForceApp(t)

	// The first five failures pass the gate; the fifth arms the lock
	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "attempt %d", i+1)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestBruteForceSuccessClearsAttempts(t *testing.T) {
	app, _ := setupBruteForceApp(t)

	for i := 0; i < 5; i++ {
		_, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
	}

	// Locked out
	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// A successful login clears both the counter and the lock
	_, err = app.Test(httptest.NewRequest("POST", "/reset", nil))
	require.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestBruteForceAttemptCount(t *testing.T) {
	app, bf := setupBruteForceApp(t)

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
	}

	var count int
	var countErr error
	checkApp := fiber.New()
	checkApp.Get("/count", func(c *fiber.Ctx) error {
		count, countErr = bf.GetAttemptCount(c, c.IP())
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := checkApp.Test(httptest.NewRequest("GET", "/count", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, countErr)
	assert.Equal(t, 3, count)
}

func TestBruteForceDisabledWithoutRedis(t *testing.T) {
	bf := NewBruteForceProtection(nil)

	app := fiber.New()
	app.Post("/login", bf.CheckAndRecordAttempt(), func(c *fiber.Ctx) error {
		bf.RecordFailedAttempt(c, c.IP())
		return response.Unauthorized(c, "Invalid credentials")
	})

	// Without Redis, protection is off and every request reaches the handler
	for i := 0; i < 30; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
}
