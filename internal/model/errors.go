package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerExists    = errors.New("player already registered")
	ErrEmptyName       = errors.New("player name is empty")
	ErrInvalidPosition = errors.New("invalid position")

	// Team and score errors
	ErrInvalidTeam      = errors.New("invalid team letter")
	ErrInvalidScoreKind = errors.New("score kind must be win or lose")
	ErrInvalidPayment   = errors.New("invalid payment method")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Log errors
	ErrLogNotFound = errors.New("no log for that date")
	ErrInvalidDate = errors.New("invalid log date")
)

// Connectivity tracks whether remote synchronization is currently trusted.
type Connectivity string

const (
	ConnChecking Connectivity = "checking"
	ConnOnline   Connectivity = "online"
	ConnLocal    Connectivity = "local"
)
