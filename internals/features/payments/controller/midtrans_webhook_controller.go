package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"tourku_backend/internals/features/payments/dto"
	"tourku_backend/internals/features/payments/service"
	helper "tourku_backend/internals/helpers"
)

type WebhookController struct {
	Reconciler *service.Reconciler
	Log        *logrus.Logger
}

func NewWebhookController(r *service.Reconciler, log *logrus.Logger) *WebhookController {
	return &WebhookController{Reconciler: r, Log: log}
}

// POST /api/payments/midtrans/notification
func (h *WebhookController) MidtransNotification(c *fiber.Ctx) error {
	// body fiber di-reuse setelah handler selesai → copy untuk audit log
	raw := append([]byte(nil), c.Body()...)

	var n dto.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid notification payload")
	}
	// order_id mentah dibiarkan: signature dihitung gateway atas nilai apa adanya
	if strings.TrimSpace(n.OrderID) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id is required")
	}

	out, err := h.Reconciler.HandleNotification(c.UserContext(), n, raw)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidSignature):
		return helper.JsonError(c, fiber.StatusForbidden, "invalid signature")
	case errors.Is(err, service.ErrPaymentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
	case errors.Is(err, service.ErrNotificationBusy):
		return helper.JsonError(c, fiber.StatusConflict, "notification is being processed, retry later")
	default:
		h.Log.WithError(err).WithField("order_id", n.OrderID).Error("midtrans notification failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to process notification")
	}

	msg := "notification processed"
	if out.Ignored {
		msg = "notification ignored"
	}
	return helper.JsonOK(c, msg, out)
}
