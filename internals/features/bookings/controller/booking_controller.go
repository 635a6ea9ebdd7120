// internals/features/bookings/controller/booking_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourku_backend/internals/features/bookings/dto"
	"tourku_backend/internals/features/bookings/service"
	helper "tourku_backend/internals/helpers"
	"tourku_backend/internals/middlewares/auth"
)

type BookingController struct {
	Orders   *service.OrderService
	Validate *validator.Validate
}

func NewBookingController(orders *service.OrderService) *BookingController {
	return &BookingController{Orders: orders, Validate: helper.NewValidator()}
}

// =========================================================
// PLACE ORDER - POST /api/public/bookings/orders
// JWT opsional; user id dari token menang atas body.
// =========================================================
func (h *BookingController) PlaceOrder(c *fiber.Ctx) error {
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var authUserID *uuid.UUID
	if id, ok := auth.UserID(c); ok {
		authUserID = &id
	}

	out, err := h.Orders.PlaceOrder(c.UserContext(), req, authUserID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "order created", out)
}

// =========================================================
// RETRY PAYMENT - POST /api/public/bookings/:id/retry-payment
// =========================================================
func (h *BookingController) RetryPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	out, err := h.Orders.RetryPayment(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payment transaction created", out)
}

// =========================================================
// STATUS - GET /api/public/bookings/:code/status
// =========================================================
func (h *BookingController) GetStatus(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "booking code is required")
	}

	out, err := h.Orders.GetStatus(c.UserContext(), code)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", out)
}

// =========================================================
// MANUAL CONFIRMATION - POST /api/a/bookings/:id/confirm-payment
// =========================================================
func (h *BookingController) ConfirmPayment(c *fiber.Ctx) error {
	adminID, ok := auth.UserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	out, err := h.Orders.ConfirmPayment(c.UserContext(), id, adminID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payment confirmed", out)
}
