// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Input validation errors.
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("weak password")

	// Account lifecycle errors.
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrAlreadyVerified    = errors.New("already verified")
	ErrNotVerified        = errors.New("not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCodeMismatch       = errors.New("verification code mismatch")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrResendTooSoon      = errors.New("resend requested too soon")

	// Collaborator failures.
	ErrNotificationFailure = errors.New("notification failure")
	ErrConfiguration       = errors.New("configuration error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// messages holds the stable, user-facing text for each sentinel.
var messages = map[error]string{
	ErrorNotFound:          "User not found",
	ErrorInternal:          "Operation failed",
	ErrInvalidInput:        "Missing required fields",
	ErrInvalidEmailFormat:  "Invalid email format",
	ErrWeakPassword:        "Password must be at least 6 characters long",
	ErrAlreadyRegistered:   "Email already registered",
	ErrAlreadyVerified:     "User is already verified",
	ErrNotVerified:         "You have to verify your account",
	ErrInvalidCredentials:  "User or password incorrect",
	ErrCodeMismatch:        "Invalid verification code",
	ErrCodeExpired:         "Verification code has expired. Please request a new one.",
	ErrResendTooSoon:       "Please wait before requesting a new code",
	ErrNotificationFailure: "Failed to send email. Please try again later.",
	ErrConfiguration:       "Operation failed",
	ErrInvalidToken:        "Invalid token",
	ErrTokenExpired:        "Token expired",
}

// Kinds lists every sentinel in the order they should be matched.
// ErrorInternal and ErrConfiguration come last since they may wrap others.
var Kinds = []error{
	ErrInvalidInput,
	ErrInvalidEmailFormat,
	ErrWeakPassword,
	ErrorNotFound,
	ErrAlreadyRegistered,
	ErrAlreadyVerified,
	ErrNotVerified,
	ErrInvalidCredentials,
	ErrCodeMismatch,
	ErrCodeExpired,
	ErrResendTooSoon,
	ErrNotificationFailure,
	ErrInvalidToken,
	ErrTokenExpired,
	ErrConfiguration,
	ErrorInternal,
}

// Kind returns the sentinel err matches, or ErrorInternal when it matches none.
func Kind(err error) error {
	for _, k := range Kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrorInternal
}

// Message returns the stable user-facing message for err.
func Message(err error) string {
	return messages[Kind(err)]
}

// FromMessage maps a user-facing message back to its sentinel. It is used by
// clients that only receive the message over the wire. ErrorInternal is
// returned for unknown messages and for the generic failure message.
func FromMessage(msg string) error {
	if msg == messages[ErrorInternal] {
		return ErrorInternal
	}
	for _, k := range Kinds {
		if messages[k] == msg {
			return k
		}
	}
	return ErrorInternal
}
