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

// ValidationError carries the full set of per-field violations so callers can
// surface every failing field at once rather than only the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError from a field->message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ConflictError indicates that a write would violate a registry invariant.
// ExistingID names the record that already holds the contested property.
type ConflictError struct {
	Code       string
	ExistingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s (existing record %s)", e.Code, e.ExistingID)
}

// NewConflictError creates a ConflictError with a machine-readable code.
func NewConflictError(code, existingID string) *ConflictError {
	return &ConflictError{Code: code, ExistingID: existingID}
}

// ConfirmationRequiredError signals that a guarded action was attempted without
// the explicit confirmation it requires. No mutation has been performed.
type ConfirmationRequiredError struct {
	Reason string
}

func (e *ConfirmationRequiredError) Error() string {
	return "confirmation required: " + e.Reason
}

// NewConfirmationRequiredError creates a ConfirmationRequiredError with a
// human-readable warning describing the consequence of proceeding.
func NewConfirmationRequiredError(reason string) *ConfirmationRequiredError {
	return &ConfirmationRequiredError{Reason: reason}
}

// AppError wraps an unexpected store or infrastructure failure with a status
// code and a message safe to log.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
