package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76/client"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bizprofile/internal/app"
	"bizprofile/internal/config"
	"bizprofile/internal/logging"
	"bizprofile/internal/storage"
	"bizprofile/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// --- Databases ---
	primary, err := openDatabase(cfg.DatabaseDSN)
	if err != nil {
		logrus.Fatalf("Failed to connect to primary database: %v", err)
	}
	profiles, err := openDatabase(cfg.ProfileDatabaseDSN)
	if err != nil {
		logrus.Fatalf("Failed to connect to profile database: %v", err)
	}
	if cfg.AutoMigrate {
		if err := app.Migrate(primary, profiles); err != nil {
			logrus.Fatalf("Failed to migrate databases: %v", err)
		}
	}

	// --- External services ---
	ext := app.Externals{
		Store: storage.NewClient(storage.Config{
			BaseURL: cfg.StorageURL,
			APIKey:  cfg.StorageAPIKey,
			Timeout: cfg.StorageTimeout,
		}),
	}
	if cfg.StripeKey != "" && cfg.StripeKey != "None" {
		stripeAPI := &client.API{}
		stripeAPI.Init(cfg.StripeKey, nil)
		ext.Checkout = stripeAPI.CheckoutSessions
	} else {
		logrus.Warn("STRIPE_KEY is not set, payments are disabled")
	}

	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logrus.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		ext.Publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
			logrus.Errorf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		logrus.Info("RABBITMQ_URL is not set, order events are not published")
	}

	// --- Fiber app ---
	deps := app.NewDeps(cfg, primary, profiles, ext)
	fiberApp, err := app.New(deps)
	if err != nil {
		logrus.Fatalf("Failed to create app: %v", err)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Starting server on %s", cfg.AppPort)
		if err := fiberApp.Listen(cfg.AppPort); err != nil {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	logrus.Info("Shutting down server...")
	if err := fiberApp.Shutdown(); err != nil {
		logrus.Errorf("Error during Fiber shutdown: %v", err)
	}
	closeDatabase(primary)
	closeDatabase(profiles)
	logrus.Info("Server gracefully stopped")
}

func openDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func closeDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Warn("failed to close database pool")
	}
}
