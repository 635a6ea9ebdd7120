package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	bookingService "tourku_backend/internals/features/bookings/service"
	paymentService "tourku_backend/internals/features/payments/service"
	scheduleController "tourku_backend/internals/features/schedules/controller"
	scheduleService "tourku_backend/internals/features/schedules/service"
	"tourku_backend/internals/helpers/events"
	"tourku_backend/internals/helpers/redislock"
	"tourku_backend/internals/middlewares"
	"tourku_backend/internals/middlewares/auth"
	routeDetails "tourku_backend/internals/route/details"
)

// Deps: dependency yang dirakit di main.go.
type Deps struct {
	DB        *gorm.DB
	Log       *logrus.Logger
	Redis     *redis.Client // nil bila REDIS_URL kosong
	Gateway   paymentService.Gateway
	Locker    redislock.Locker
	Publisher events.Publisher
	Generator *scheduleService.Generator
	Sweeper   *scheduleService.Sweeper

	JWTSecret         string
	CronSecret        string
	MidtransServerKey string
	OrderPrefix       string
}

func SetupRoutes(app *fiber.App, d Deps) {
	log := d.Log

	// ===================== BASE =====================
	BaseRoutes(app, d.DB, d.Redis)

	// ===================== GROUPS =====================
	jwtAuth := auth.AuthJWT(auth.AuthJWTOpts{Secret: d.JWTSecret, AllowCookieFallback: true})

	log.Info("[ROUTES] Setting up PUBLIC group...")
	public := app.Group("/api/public", middlewares.GlobalRateLimiter())

	log.Info("[ROUTES] Setting up ADMIN guards (Auth + IsAdmin)...")
	isAdmin := auth.IsAdmin(d.DB, log)

	g := routeDetails.Groups{
		Public:      public,
		Payments:    app.Group("/api/payments"),
		Admin:       app.Group("/api/a"),
		OptionalJWT: auth.AuthJWT(auth.AuthJWTOpts{Secret: d.JWTSecret, Optional: true}),
		AdminGuard:  []fiber.Handler{jwtAuth, isAdmin},
		// endpoint sweep juga menerima Bearer CRON_SECRET dari scheduler eksternal
		CronGuard: []fiber.Handler{auth.CronOrJWT(d.CronSecret, jwtAuth), isAdmin},
	}

	// ===================== SERVICES =====================
	orders := bookingService.NewOrderService(d.DB, d.Gateway, d.Generator, d.Publisher, d.OrderPrefix, log)
	reconciler := paymentService.NewReconciler(d.DB, d.MidtransServerKey, d.Locker, d.Publisher, log)

	// ===================== MOUNT ROUTES =====================
	log.Info("[ROUTES] Mounting Payment routes...")
	routeDetails.PaymentRoutes(g, reconciler)

	log.Info("[ROUTES] Mounting Schedule routes...")
	routeDetails.ScheduleRoutes(g, scheduleController.NewScheduleController(d.Generator, d.Sweeper))

	log.Info("[ROUTES] Mounting Booking routes...")
	routeDetails.BookingRoutes(g, orders)
}
