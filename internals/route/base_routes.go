package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var startTime = time.Now()

// BaseRoutes: liveness + status dependency (DB wajib, Redis opsional).
func BaseRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("tourku backend is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "Connected"
			if err := rdb.Ping(ctx).Err(); err != nil {
				// lock webhook jatuh ke mode tanpa lock, service tetap jalan
				redisStatus = "Redis connection error"
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"redis":          redisStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}
