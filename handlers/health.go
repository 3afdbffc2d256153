package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/collegehub/cms-api/utils/cache"
	"github.com/collegehub/cms-api/utils/response"
)

// HealthChecker reports whether the database connection is alive
type HealthChecker interface {
	HealthCheck() error
}

// Health returns a handler that pings the database and, when configured,
// Redis. Redis being down degrades the report instead of failing it; the
// app keeps serving without sessions.
func Health(db HealthChecker, redisCache *cache.RedisCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{
			"database": "ok",
			"redis":    "disabled",
		}

		if err := db.HealthCheck(); err != nil {
			status["database"] = "down"
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"data":   status,
			})
		}

		if redisCache != nil {
			if err := redisCache.Ping(c.Context()); err != nil {
				status["redis"] = "down"
			} else {
				status["redis"] = "ok"
			}
		}

		return response.Success(c, status)
	}
}
