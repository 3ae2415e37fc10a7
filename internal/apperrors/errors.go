package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrIntegrity indicates stored data violates a referential invariant
// (for example a transaction pointing at a partner that does not exist).
// It is not retryable and should be surfaced to an operator.
var ErrIntegrity = errors.New("data integrity violation")

// AppError carries an HTTP-ish status code along with the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IntegrityError reports a transaction whose partner reference cannot be resolved.
type IntegrityError struct {
	PartnerID     string
	TransactionID string
}

func (e *IntegrityError) Error() string {
	if e.TransactionID == "" {
		return fmt.Sprintf("data integrity violation: partner %s referenced by transactions does not exist", e.PartnerID)
	}
	return fmt.Sprintf("data integrity violation: partner %s referenced by transaction %s does not exist", e.PartnerID, e.TransactionID)
}

// Is lets errors.Is(err, ErrIntegrity) match.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// NewValidationError wraps ErrValidation with a human readable reason.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
