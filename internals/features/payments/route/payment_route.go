package route

import (
	"github.com/gofiber/fiber/v2"

	"tourku_backend/internals/features/payments/controller"
)

/*
Webhook gateway (tanpa JWT, diverifikasi lewat signature_key).
Contoh mount: PaymentWebhookRoutes(app.Group("/api/payments"), ctl)
- POST /api/payments/midtrans/notification
*/
func PaymentWebhookRoutes(r fiber.Router, ctl *controller.WebhookController) {
	r.Post("/midtrans/notification", ctl.MidtransNotification)
}
