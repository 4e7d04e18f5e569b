package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port           int    `env:"PORT" envDefault:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	RedisURL       string `env:"REDIS_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"168"`
	CheckInDay     int    `env:"CHECKIN_DAY" envDefault:"1"`
	MessageTTLDays int    `env:"MESSAGE_TTL_DAYS" envDefault:"7"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`

	// SMTP is optional; with no host configured, verification emails are
	// logged instead of sent.
	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPPass   string `env:"SMTP_PASS"`
	EmailFrom  string `env:"EMAIL_FROM" envDefault:"no-reply@localhost"`
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c *Config) MessageTTL() time.Duration {
	return time.Duration(c.MessageTTLDays) * 24 * time.Hour
}

// CheckInWeekday maps the configured day to time.Weekday. The default (1)
// is Monday, the cohort check-in cadence.
func (c *Config) CheckInWeekday() time.Weekday {
	return time.Weekday(c.CheckInDay % 7)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate(isProduction bool) error {
	if c.CheckInDay < 0 || c.CheckInDay > 6 {
		return fmt.Errorf("CHECKIN_DAY must be 0-6 (Sunday-Saturday), got %d", c.CheckInDay)
	}

	if isProduction {
		if err := validateSecret("JWT_SECRET", c.JWTSecret); err != nil {
			return err
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
