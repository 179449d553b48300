package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is only acceptable in development.
const DefaultJWTSecret = "change-me-in-production"

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// StoreDriver is "mongo" or "memory". The memory store loses data on restart.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI    string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DBName      string `env:"MONGODB_DB" envDefault:"lagougah"`

	JWTSecret     string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	AllowSignup   bool          `env:"ALLOW_SIGNUP" envDefault:"true"`

	S3Bucket       string        `env:"AWS_S3_BUCKET"`
	S3Region       string        `env:"AWS_REGION" envDefault:"ap-southeast-1"`
	S3AccessKeyID  string        `env:"AWS_ACCESS_KEY_ID"`
	S3SecretKey    string        `env:"AWS_SECRET_ACCESS_KEY"`
	S3Endpoint     string        `env:"S3_ENDPOINT"` // MinIO or other S3-compatible endpoint
	UploadURLTTL   time.Duration `env:"UPLOAD_URL_TTL" envDefault:"15m"`
	DownloadURLTTL time.Duration `env:"DOWNLOAD_URL_TTL" envDefault:"1h"`

	RedisURL    string        `env:"REDIS_URL"`
	CachePrefix string        `env:"CACHE_PREFIX" envDefault:"lagougah:"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	ContactRatePerMinute int `env:"CONTACT_RATE_PER_MINUTE" envDefault:"5"`
	LoginRatePerMinute   int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// Load parses the environment. Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg, nil
}

// Validate rejects settings that are unsafe or contradictory.
func (c *Config) Validate() error {
	var errs []error
	if c.StoreDriver != "mongo" && c.StoreDriver != "memory" {
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be mongo or memory, got %q", c.StoreDriver))
	}
	if !c.IsDevelopment() {
		if c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET must be set to a strong secret (not the default change-me-in-production)"))
		}
		if c.StoreDriver == "memory" {
			errs = append(errs, errors.New("STORE_DRIVER=memory is only allowed in development"))
		}
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) UseS3() bool    { return c.S3Bucket != "" }
func (c *Config) UseRedis() bool { return c.RedisURL != "" }
func (c *Config) UseSMTP() bool  { return c.SMTPHost != "" }

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q: use debug, info, warn or error", s)
	}
	return l, nil
}
