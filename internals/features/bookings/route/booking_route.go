package route

import (
	"github.com/gofiber/fiber/v2"

	"tourku_backend/internals/features/bookings/controller"
	"tourku_backend/internals/middlewares"
)

/*
Public routes: Bookings
Contoh mount: BookingPublicRoutes(app.Group("/api/public"), ctl, optionalJWT)
- POST /api/public/bookings/orders
- GET  /api/public/bookings/:code/status
- POST /api/public/bookings/:id/retry-payment
*/
func BookingPublicRoutes(r fiber.Router, ctl *controller.BookingController, optionalJWT fiber.Handler) {
	g := r.Group("/bookings")

	g.Post("/orders", middlewares.CheckoutRateLimiter(), optionalJWT, ctl.PlaceOrder)
	g.Get("/:code/status", ctl.GetStatus)
	g.Post("/:id/retry-payment", middlewares.CheckoutRateLimiter(), ctl.RetryPayment)
}

/*
Admin routes: Bookings
guards dipasang per route (AuthJWT + IsAdmin); group /api/a dipakai bersama route cron.
- POST /api/a/bookings/:id/confirm-payment
*/
func BookingAdminRoutes(r fiber.Router, ctl *controller.BookingController, guards ...fiber.Handler) {
	g := r.Group("/bookings")

	g.Post("/:id/confirm-payment", append(guards, ctl.ConfirmPayment)...)
}
