package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourku_backend/internals/features/schedules/service"
	helper "tourku_backend/internals/helpers"
)

type ScheduleController struct {
	Generator *service.Generator
	Sweeper   *service.Sweeper
}

func NewScheduleController(g *service.Generator, s *service.Sweeper) *ScheduleController {
	return &ScheduleController{Generator: g, Sweeper: s}
}

// POST /api/a/schedules/bookings/:booking_id
// 201 bila jadwal baru dibuat, 200 bila sudah ada.
func (h *ScheduleController) CreateForBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("booking_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	out, err := h.Generator.CreateForBooking(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if out.Created {
		return helper.JsonCreated(c, "schedule created", out)
	}
	return helper.JsonOK(c, "schedule already exists", out)
}

// POST /api/a/schedules/expire (admin atau cron)
func (h *ScheduleController) ExpirePast(c *fiber.Ctx) error {
	n, err := h.Sweeper.ExpirePast(c.UserContext())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to expire schedules")
	}
	return helper.JsonOK(c, "schedules expired", fiber.Map{
		"expired": n,
		"today":   h.Sweeper.Today(),
	})
}
