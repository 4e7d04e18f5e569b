package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Background job intervals
const CleanupJobInterval = 5 * time.Minute

// Default rate limiting
const DefaultRateLimitPerMin = 120

// Content limits, mirrored by database constraints
const (
	MaxMessageLength        = 500
	MaxGoalLength           = 100
	MaxBlockerNoteLength    = 200
	MaxCohortNameLength     = 50
	MaxSupportMessageLength = 120
)

// Email verification links
const (
	VerificationTokenBytes = 32
	VerificationTokenTTL   = 24 * time.Hour
)
