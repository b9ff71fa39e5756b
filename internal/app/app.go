// Package app assembles the HTTP application from its dependencies.
package app

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bizprofile/internal/config"
	"bizprofile/internal/handlers"
	"bizprofile/internal/middleware"
	"bizprofile/internal/models"
	"bizprofile/internal/repositories"
	"bizprofile/internal/services"
)

const (
	// MaxBodySize bounds every request; profile edits carry inline media.
	MaxBodySize = 50 << 20
	// DefaultBodySize bounds requests outside the profile routes.
	DefaultBodySize = 1 << 20
)

// Externals are the outbound collaborators that tests replace with fakes.
// Any of them may be nil.
type Externals struct {
	Store     services.ObjectStore
	Checkout  services.CheckoutSessions
	Publisher services.EventPublisher
}

// Deps is the immutable set of services built once at startup.
type Deps struct {
	Config config.Config

	Auth          *services.AuthService
	Customers     *services.CustomerService
	Deals         *services.DealService
	Orders        *services.OrderService
	Profiles      *services.ProfileService
	Payments      *services.PaymentService
	Subscriptions *services.SubscriptionService

	Metrics *middleware.Metrics
}

// NewDeps wires repositories and services. primary holds accounts, CRM data
// and orders; profiles holds the public business cards.
func NewDeps(cfg config.Config, primary, profiles *gorm.DB, ext Externals) *Deps {
	userRepo := repositories.NewGORMUserRepository(primary)
	sessionRepo := repositories.NewGORMSessionRepository(primary)
	customerRepo := repositories.NewGORMCustomerRepository(primary)
	dealRepo := repositories.NewGORMDealRepository(primary)
	orderRepo := repositories.NewGORMOrderRepository(primary)
	profileRepo := repositories.NewGORMProfileRepository(profiles)

	return &Deps{
		Config:    cfg,
		Auth:      services.NewAuthService(userRepo, sessionRepo, cfg.JWTSecret, cfg.SessionTTL),
		Customers: services.NewCustomerService(customerRepo),
		Deals:     services.NewDealService(dealRepo),
		Orders:    services.NewOrderService(orderRepo, ext.Publisher),
		Profiles: services.NewProfileService(profileRepo, ext.Store, services.Buckets{
			Photo: cfg.StorageProfileBucket,
			Cover: cfg.StorageCoverBucket,
		}),
		Payments:      services.NewPaymentService(ext.Checkout, cfg.StripeSubPrice, cfg.Domain),
		Subscriptions: services.NewSubscriptionService(cfg.MailgunURL, cfg.MailgunKey),
		Metrics:       middleware.NewMetrics(),
	}
}

// Migrate creates or updates the tables of both databases.
func Migrate(primary, profiles *gorm.DB) error {
	if err := primary.AutoMigrate(&models.User{}, &models.Session{}, &models.Customer{}, &models.Deal{}, &models.Order{}); err != nil {
		return fmt.Errorf("failed to migrate primary database: %w", err)
	}
	if err := profiles.AutoMigrate(&models.Profile{}); err != nil {
		return fmt.Errorf("failed to migrate profile database: %w", err)
	}
	return nil
}

// New builds the Fiber application with every route registered.
func New(deps *Deps) (*fiber.App, error) {
	cookieKey, err := sessionKey(deps.Config.SessionKey)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    MaxBodySize,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Output: logrus.StandardLogger().WriterLevel(logrus.InfoLevel),
	}))
	app.Use(deps.Metrics.Handler())
	app.Use(cors.New())
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))

	gate := middleware.SessionRequired(deps.Auth, deps.Config.SessionCookieName)
	api := app.Group("/api")

	// Profile routes match before the smaller limit below is reached.
	handlers.NewProfileHandler(deps.Profiles).RegisterRoutes(api)
	api.Use(middleware.BodyLimit(DefaultBodySize))

	handlers.NewAuthHandler(deps.Auth, handlers.CookieConfig{
		Name:     deps.Config.SessionCookieName,
		SameSite: deps.Config.SessionSameSite,
		Secure:   deps.Config.CookieSecure,
	}).RegisterRoutes(api)
	handlers.NewCustomerHandler(deps.Customers).RegisterRoutes(api, gate)
	handlers.NewDealHandler(deps.Deals).RegisterRoutes(api, gate)
	handlers.NewOrderHandler(deps.Orders).RegisterRoutes(api)
	handlers.NewPaymentHandler(deps.Payments).RegisterRoutes(api, gate)
	handlers.NewSubscribeHandler(deps.Subscriptions).RegisterRoutes(api)

	if dir := deps.Config.StaticDir; dir != "" {
		serveFrontend(app, dir)
	}
	return app, nil
}

// sessionKey returns the configured cookie key or a fresh one. A generated
// key invalidates every session issued before a restart.
func sessionKey(configured string) (string, error) {
	if configured == "" {
		logrus.Warn("SESSION_KEY is not set, generating an ephemeral cookie key")
		return encryptcookie.GenerateKey(), nil
	}
	raw, err := base64.StdEncoding.DecodeString(configured)
	if err != nil {
		return "", fmt.Errorf("SESSION_KEY must be base64: %w", err)
	}
	switch len(raw) {
	case 16, 24, 32:
		return configured, nil
	default:
		return "", fmt.Errorf("SESSION_KEY must decode to 16, 24 or 32 bytes, got %d", len(raw))
	}
}

// serveFrontend serves a built single page app and falls back to its index
// for client side routes.
func serveFrontend(app *fiber.App, dir string) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		logrus.WithError(err).WithField("dir", dir).Warn("static directory has no index.html, frontend disabled")
		return
	}
	app.Static("/", dir)
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{
		"message": err.Error(),
	})
}
