package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/redis/go-redis/v9"

	"tourku_backend/internals/configs"
	database "tourku_backend/internals/databases"
	paymentService "tourku_backend/internals/features/payments/service"
	"tourku_backend/internals/features/schedules/consumer"
	"tourku_backend/internals/features/schedules/scheduler"
	scheduleService "tourku_backend/internals/features/schedules/service"
	helper "tourku_backend/internals/helpers"
	"tourku_backend/internals/helpers/events"
	"tourku_backend/internals/helpers/redislock"
	middlewares "tourku_backend/internals/middlewares"
	routes "tourku_backend/internals/route"
	"tourku_backend/internals/seeds"
)

func main() {
	log := configs.NewLogger()
	configs.LoadEnv(log)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	middlewares.SetupMiddlewares(app, log, middlewares.Options{
		CorsOrigins:    configs.CorsAllowOrigins,
		Timezone:       configs.AppTimezone,
		RequestTimeout: configs.RequestTimeout,
	})

	// 🔌 DB connect + pool + warm-up
	db := database.ConnectDB(log)
	database.TunePool(db, log)
	database.WarmUpQueries(db, log)
	if configs.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Fatal("auto migrate failed")
		}
	}
	// 🌱 seed paket & admin (mis. DB_SEED_DIR=internals/seeds/data)
	if configs.DBSeedDir != "" {
		if err := seeds.RunAllSeeds(context.Background(), db, log, configs.DBSeedDir); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 🔒 Redis (lock notifikasi); tanpa REDIS_URL jalan tanpa lock
	var (
		rdb    *redis.Client
		locker redislock.Locker = redislock.NoopLocker{}
	)
	if configs.RedisURL != "" {
		client, err := redislock.NewRedisClient(configs.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, notification lock disabled")
		} else {
			rdb = client
			locker = redislock.NewRedisLocker(client)
		}
	}

	// ✅ MIDTRANS
	gateway := paymentService.NewSnapGateway(paymentService.SnapOptions{
		ServerKey:     configs.MidtransServerKey,
		UseProduction: configs.MidtransUseProd,
		FinishURL:     configs.MidtransFinishURL,
		ExpiryMinutes: configs.MidtransExpiryMinutes,
	})

	generator := scheduleService.NewGenerator(db, log)
	sweeper := scheduleService.NewSweeper(db, configs.Location(), log)

	// 📣 RabbitMQ: publisher booking events + consumer booking.confirmed
	var (
		publisher    events.Publisher = events.NoopPublisher{}
		rabbit       *events.RabbitPublisher
		bookingQueue *events.Consumer
		consumerDone <-chan struct{}
	)
	if configs.RabbitMQURL != "" {
		pub, err := events.NewRabbitPublisher(configs.RabbitMQURL, log)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, booking events disabled")
		} else {
			rabbit = pub
			publisher = pub
			c, err := events.NewConsumer(pub.Connection(), consumer.QueueBookingConfirmed, events.RoutingBookingConfirmed, log)
			if err != nil {
				log.WithError(err).Warn("booking.confirmed consumer not started")
			} else {
				bookingQueue = c
				consumerDone = consumer.Start(ctx, c, generator, log)
			}
		}
	}

	// ⏱ scheduler setelah DB siap
	schedulerDone := scheduler.StartExpiryScheduler(ctx, sweeper, configs.ScheduleSweepInterval, log)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:                db,
		Log:               log,
		Redis:             rdb,
		Gateway:           gateway,
		Locker:            locker,
		Publisher:         publisher,
		Generator:         generator,
		Sweeper:           sweeper,
		JWTSecret:         configs.JWTSecret,
		CronSecret:        configs.CronSecret,
		MidtransServerKey: configs.MidtransServerKey,
		OrderPrefix:       configs.MidtransOrderPrefix,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Infof("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.WithError(err).Fatal("server error")
		}
	}()

	// graceful shutdown: stop worker → HTTP → broker → redis → DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down...")

	stop()
	<-schedulerDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}

	if bookingQueue != nil {
		bookingQueue.Close()
		<-consumerDone
	}
	if rabbit != nil {
		rabbit.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	database.Close(db)
}
