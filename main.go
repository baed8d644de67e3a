package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jgecalumni/room-booking-app/config"
	"github.com/jgecalumni/room-booking-app/controllers"
	"github.com/jgecalumni/room-booking-app/cron"
	"github.com/jgecalumni/room-booking-app/db"
	"github.com/jgecalumni/room-booking-app/payment"
	"github.com/jgecalumni/room-booking-app/routes"
	"github.com/jgecalumni/room-booking-app/utils"
)

func main() {
	cfg := config.Load()

	conn, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}
	logrus.Info("database connection established")

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, cfg.MailFrom)
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	storage := utils.NewRoomStorage(cfg.StorageRoot)

	app := fiber.New(fiber.Config{
		// Catch-all: anything a handler did not convert itself still
		// answers with the envelope instead of a crashed process.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return utils.Fail(c, err)
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,HEAD,PUT,PATCH,POST,DELETE",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))

	app.Static("/public/rooms", cfg.StorageRoot)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})

	routes.SetupAuthRoutes(app, controllers.NewAuthController(conn, mailer, cfg.JWTSecret), cfg)
	routes.SetupListingRoutes(app, controllers.NewListingController(conn, storage), cfg)
	routes.SetupBookingRoutes(app, controllers.NewBookingController(conn, gateway, mailer, cfg.RazorpayKeySecret), cfg)
	routes.SetupReviewRoutes(app, controllers.NewReviewController(conn), cfg)
	routes.SetupCountRoutes(app, controllers.NewCountController(conn), cfg)

	notifier := cron.NewNotifier(conn, mailer, redisClient, cfg.BaseURL)
	if err := notifier.Start(); err != nil {
		logrus.Fatal("Failed to start notifier: ", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logrus.Info("shutting down")
		notifier.Stop()
		if err := app.Shutdown(); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}

	if err := db.Close(conn); err != nil {
		logrus.WithError(err).Error("failed to close database")
	}
}
