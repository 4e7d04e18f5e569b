package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("JWTExpiry converts hours to duration", func(t *testing.T) {
		cfg := &Config{JWTExpiryHours: 168}
		assert.Equal(t, 168*time.Hour, cfg.JWTExpiry())
	})

	t.Run("MessageTTL converts days to duration", func(t *testing.T) {
		cfg := &Config{MessageTTLDays: 7}
		assert.Equal(t, 7*24*time.Hour, cfg.MessageTTL())
	})

	t.Run("CheckInWeekday defaults to Monday", func(t *testing.T) {
		cfg := &Config{CheckInDay: 1}
		assert.Equal(t, time.Monday, cfg.CheckInWeekday())
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects out of range check-in day", func(t *testing.T) {
		cfg := &Config{CheckInDay: 9}
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("rejects short JWT secret in production", func(t *testing.T) {
		cfg := &Config{CheckInDay: 1, JWTSecret: "short"}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("rejects known weak secrets in production", func(t *testing.T) {
		cfg := &Config{CheckInDay: 1, JWTSecret: "change-me"}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("accepts strong secret in production", func(t *testing.T) {
		cfg := &Config{
			CheckInDay: 1,
			JWTSecret:  "0123456789abcdef0123456789abcdef",
			RedisURL:   "rediss://localhost:6379",
		}
		assert.NoError(t, cfg.Validate(true))
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":             os.Getenv("PORT"),
		"DATABASE_URL":     os.Getenv("DATABASE_URL"),
		"REDIS_URL":        os.Getenv("REDIS_URL"),
		"JWT_SECRET":       os.Getenv("JWT_SECRET"),
		"JWT_EXPIRY_HOURS": os.Getenv("JWT_EXPIRY_HOURS"),
		"CHECKIN_DAY":      os.Getenv("CHECKIN_DAY"),
		"MESSAGE_TTL_DAYS": os.Getenv("MESSAGE_TTL_DAYS"),
		"LOG_LEVEL":        os.Getenv("LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("JWT_SECRET", "test-secret")
		os.Unsetenv("PORT")
		os.Unsetenv("JWT_EXPIRY_HOURS")
		os.Unsetenv("CHECKIN_DAY")
		os.Unsetenv("MESSAGE_TTL_DAYS")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
		assert.Equal(t, 168, cfg.JWTExpiryHours)
		assert.Equal(t, 1, cfg.CheckInDay)
		assert.Equal(t, 7, cfg.MessageTTLDays)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("JWT_SECRET", "test-secret")
		os.Setenv("PORT", "3000")
		os.Setenv("CHECKIN_DAY", "3")
		os.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, 3, cfg.CheckInDay)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("fails without required DATABASE_URL", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("JWT_SECRET", "test-secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without required JWT_SECRET", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Unsetenv("JWT_SECRET")

		_, err := Load()
		assert.Error(t, err)
	})
}
