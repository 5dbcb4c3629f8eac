package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors carried across the core. The API layer maps each of these
// to a fixed HTTP status in internal/api/error_handler.go; display text never
// drives status selection.
var (
	// Authentication failures. ErrInvalidCredentials is deliberately generic
	// so responses never reveal whether a username exists.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrAccountLocked      = errors.New("account temporarily locked after repeated failed login attempts")
	ErrAccountDisabled    = errors.New("account is deactivated")

	// Two-factor failures.
	ErrInvalidTwoFactorCode   = errors.New("invalid two-factor code")
	ErrTwoFactorNotConfigured = errors.New("two-factor secret has not been generated")
	ErrTwoFactorNotEnabled    = errors.New("two-factor authentication is not enabled")

	ErrForbidden = errors.New("insufficient permissions")

	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("admin already exists")
	ErrAlreadyInitialized = errors.New("an admin account already exists")

	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrMediaNotFound   = errors.New("media not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrSettingNotFound = errors.New("setting not found")

	ErrValidation  = errors.New("validation failed")
	ErrRateLimited = errors.New("too many requests")
)

// ValidationError wraps ErrValidation with a field-level reason so handlers
// can raise input errors before any side effect.
func ValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
