package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const RequestIDLocal = "request_id"

// RequestContext: X-Request-ID + context dengan timeout untuk semua query DB & gateway.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, rid)
		c.Locals(RequestIDLocal, rid)

		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		return c.Next()
	}
}
