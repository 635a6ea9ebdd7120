package details

import (
	"github.com/gofiber/fiber/v2"

	bookingController "tourku_backend/internals/features/bookings/controller"
	bookingRoute "tourku_backend/internals/features/bookings/route"
	bookingService "tourku_backend/internals/features/bookings/service"
	paymentController "tourku_backend/internals/features/payments/controller"
	paymentRoute "tourku_backend/internals/features/payments/route"
	paymentService "tourku_backend/internals/features/payments/service"
	scheduleController "tourku_backend/internals/features/schedules/controller"
	scheduleRoute "tourku_backend/internals/features/schedules/route"
)

// Groups: router per prefix + guard per jenis akses.
// Guard admin dipasang per route, bukan di group: /api/a juga melayani route cron.
type Groups struct {
	Public   fiber.Router // /api/public
	Payments fiber.Router // /api/payments, webhook gateway
	Admin    fiber.Router // /api/a

	OptionalJWT fiber.Handler
	AdminGuard  []fiber.Handler // AuthJWT + IsAdmin
	CronGuard   []fiber.Handler // (CRON_SECRET | AuthJWT) + IsAdmin
}

func BookingRoutes(g Groups, orders *bookingService.OrderService) {
	ctl := bookingController.NewBookingController(orders)
	bookingRoute.BookingPublicRoutes(g.Public, ctl, g.OptionalJWT)
	bookingRoute.BookingAdminRoutes(g.Admin, ctl, g.AdminGuard...)
}

func PaymentRoutes(g Groups, rec *paymentService.Reconciler) {
	ctl := paymentController.NewWebhookController(rec, rec.Log)
	paymentRoute.PaymentWebhookRoutes(g.Payments, ctl)
}

func ScheduleRoutes(g Groups, ctl *scheduleController.ScheduleController) {
	scheduleRoute.ScheduleAdminRoutes(g.Admin, ctl, g.AdminGuard...)
	scheduleRoute.ScheduleSweepRoutes(g.Admin, ctl, g.CronGuard...)
}
