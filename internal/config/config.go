package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is assembled once at startup and passed by value afterwards.
type Config struct {
	AppPort   string
	StaticDir string

	DatabaseDSN        string
	ProfileDatabaseDSN string
	AutoMigrate        bool

	JWTSecret         string
	SessionKey        string
	SessionCookieName string
	SessionTTL        time.Duration
	SessionSameSite   string
	CookieSecure      bool

	StripeKey      string
	StripeSubPrice string
	MailgunKey     string
	MailgunURL     string
	Domain         string

	StorageURL           string
	StorageAPIKey        string
	StorageProfileBucket string
	StorageCoverBucket   string
	StorageTimeout       time.Duration

	RabbitMQURL string

	LogLevel  string
	LogFormat string
}

// New returns a viper instance with every default registered and the
// environment bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=bizprofile port=5432 sslmode=disable")
	v.SetDefault("PROFILE_DATABASE_DSN", "")
	v.SetDefault("AUTO_MIGRATE", true)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_KEY", "")
	v.SetDefault("SESSION_COOKIE_NAME", "sid")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_SAME_SITE", "Strict")
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("STRIPE_KEY", "None")
	v.SetDefault("STRIPE_SUB_PRICE", "None")
	v.SetDefault("MAILGUN_KEY", "None")
	v.SetDefault("MAILGUN_URL", "None")
	v.SetDefault("DOMAIN_URL", "http://127.0.0.1:8000")

	v.SetDefault("SUPABASE_STORAGE_URL", "")
	v.SetDefault("SUPABASE_API_KEY", "")
	v.SetDefault("STORAGE_PROFILE_BUCKET", "profile-images")
	v.SetDefault("STORAGE_COVER_BUCKET", "cover-media")
	v.SetDefault("STORAGE_TIMEOUT", "30s")

	v.SetDefault("RABBITMQ_URL", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.AutomaticEnv()
	return v
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env file")
	}
	return FromViper(New())
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:   v.GetString("APP_PORT"),
		StaticDir: v.GetString("STATIC_DIR"),

		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		ProfileDatabaseDSN: v.GetString("PROFILE_DATABASE_DSN"),
		AutoMigrate:        v.GetBool("AUTO_MIGRATE"),

		JWTSecret:         v.GetString("JWT_SECRET"),
		SessionKey:        v.GetString("SESSION_KEY"),
		SessionCookieName: v.GetString("SESSION_COOKIE_NAME"),
		SessionTTL:        v.GetDuration("SESSION_TTL"),
		SessionSameSite:   v.GetString("SESSION_SAME_SITE"),
		CookieSecure:      v.GetBool("COOKIE_SECURE"),

		StripeKey:      v.GetString("STRIPE_KEY"),
		StripeSubPrice: v.GetString("STRIPE_SUB_PRICE"),
		MailgunKey:     v.GetString("MAILGUN_KEY"),
		MailgunURL:     v.GetString("MAILGUN_URL"),
		Domain:         v.GetString("DOMAIN_URL"),

		StorageURL:           v.GetString("SUPABASE_STORAGE_URL"),
		StorageAPIKey:        v.GetString("SUPABASE_API_KEY"),
		StorageProfileBucket: v.GetString("STORAGE_PROFILE_BUCKET"),
		StorageCoverBucket:   v.GetString("STORAGE_COVER_BUCKET"),
		StorageTimeout:       v.GetDuration("STORAGE_TIMEOUT"),

		RabbitMQURL: v.GetString("RABBITMQ_URL"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}

	if cfg.ProfileDatabaseDSN == "" {
		return Config{}, fmt.Errorf("PROFILE_DATABASE_DSN must be set")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.JWTSecret == "" {
		// Tokens signed with a generated secret do not survive a restart.
		logrus.Warn("JWT_SECRET is not set, generating an ephemeral signing secret")
		cfg.JWTSecret = uuid.NewString() + uuid.NewString()
	}
	return cfg, nil
}
