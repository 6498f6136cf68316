package services

import "errors"

// Domain outcomes surfaced to callers. These are user-actionable
// conditions, not server faults, and are never retried.
var (
	ErrCodeNotFound       = errors.New("verification code not found")
	ErrCodeUsed           = errors.New("verification code already used")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrCodeMismatch       = errors.New("incorrect verification code")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// ValidationError marks malformed or missing input. Its message is safe
// to surface verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
