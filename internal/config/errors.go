package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig = errors.New("invalid configuration")

	// Puzzle engine
	ErrInvalidShape = errors.New("invalid board shape")
	ErrInvalidSeed  = errors.New("invalid seed")
	ErrInvalidCells = errors.New("cells are not a permutation of 0..n-1")

	// Game sessions
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionSolved   = errors.New("session already solved")
	ErrRegistryFull    = errors.New("session limit reached")
	ErrUnknownKey      = errors.New("key not in control grid")
	ErrKeyOutOfBounds  = errors.New("key maps outside the board")

	// Admin
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// API error codes returned in the error envelope.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidShape    = "INVALID_SHAPE"
	CodeInvalidSeed     = "INVALID_SEED"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeSessionSolved   = "SESSION_SOLVED"
	CodeRegistryFull    = "SESSION_LIMIT"
	CodeUnknownKey      = "UNKNOWN_KEY"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL"
)
