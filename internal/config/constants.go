package config

import "time"

// Board shape bounds accepted over the API.
const (
	MinBoardSide = 2
	MaxBoardSide = 8
)

// Sessions
const (
	SessionSweepInterval = time.Minute
	SolvePlayerMaxLen    = 32
)

// Server
const (
	ServerReadTimeout    = 30 * time.Second
	ServerWriteTimeout   = 60 * time.Second
	ServerIdleTimeout    = 120 * time.Second
	ServerMaxHeaderBytes = 1 << 20
	ShutdownTimeout      = 10 * time.Second
)

// SSE
const (
	SSEHubChannelBuffer  = 64
	SSEKeepAliveInterval = 15 * time.Second
)

// Rate limiting (per client IP, mutating API routes).
const (
	RateLimitPerSecond  = 20
	RateLimitBurst      = 40
	RateLimitIdleExpiry = 5 * time.Minute
)

// Admin sessions
const (
	AdminSessionTokenLength = 32
	AdminSessionTimeout     = 12 * time.Hour
)

// Logging
const (
	LogFilePattern = "slidery-%s.log" // %s = YYYY-MM-DD
	LogMaxAgeDays  = 30
)

// Database
const (
	DBBusyTimeout = 5000 // milliseconds
)
