package route

import (
	"github.com/gofiber/fiber/v2"

	"tourku_backend/internals/features/schedules/controller"
)

/*
Admin routes: Schedules. guards dipasang per route:
  ScheduleAdminRoutes(app.Group("/api/a"), ctl, AuthJWT, IsAdmin)
  ScheduleSweepRoutes(app.Group("/api/a"), ctl, CronOrJWT, IsAdmin)
- POST /api/a/schedules/bookings/:booking_id
- POST /api/a/schedules/expire
*/
func ScheduleAdminRoutes(r fiber.Router, ctl *controller.ScheduleController, guards ...fiber.Handler) {
	g := r.Group("/schedules")
	g.Post("/bookings/:booking_id", append(guards, ctl.CreateForBooking)...)
}

func ScheduleSweepRoutes(r fiber.Router, ctl *controller.ScheduleController, guards ...fiber.Handler) {
	r.Post("/schedules/expire", append(guards, ctl.ExpirePast)...)
}
