package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"tourku_backend/internals/middlewares/logger"
)

type Options struct {
	CorsOrigins    string
	Timezone       string
	RequestTimeout time.Duration
}

// SetupMiddlewares memasang middleware global dengan urutan tetap:
// recover → request context → access log → CORS.
func SetupMiddlewares(app *fiber.App, log *logrus.Logger, o Options) {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	app.Use(RecoveryMiddleware(log))
	app.Use(RequestContext(o.RequestTimeout))
	app.Use(logger.LoggerMiddleware(o.Timezone))
	app.Use(CorsMiddleware(o.CorsOrigins))
}
