package middlewares

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware menangkap panic; stack trace hanya ke log, client menerima 500 generik.
func RecoveryMiddleware(log *logrus.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.WithFields(logrus.Fields{
				"panic":      e,
				"method":     c.Method(),
				"path":       c.Path(),
				"request_id": c.Locals(RequestIDLocal),
			}).Error(string(debug.Stack()))
		},
	})
}
