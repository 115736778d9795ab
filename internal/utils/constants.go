package utils

import "time"

// Application constants
const (
	AppName    = "Firewatch"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	OTPLength          = 6
	OTPExpiry          = 10 * time.Minute
	OTPResendInterval  = time.Minute
	MaxLoginAttempts   = 5
	LoginAttemptWindow = 15 * time.Minute

	// Duty cycle: manual deactivation opens at 07:00 the day after
	// activation; the sweep force-deactivates at 08:00. The one-hour gap
	// lets a manual deactivation between 7 and 8 preempt the sweep.
	ManualDeactivationHour = 7
	SweepDeactivationHour  = 8

	// Chat
	MaxChatMessageLength = 2000
	ChatHistoryLimit     = 20

	// Stats cache
	StatsCacheTTL = 30 * time.Second
)

// Response status strings
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized"
	ErrForbidden        = "Forbidden"
)
