package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of engine error for callers and HTTP responses.
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeCapacity   ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
)

// ValidationError reports a malformed or out-of-domain input field.
// It is always returned before any computation starts.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Code returns ErrCodeValidation.
func (e *ValidationError) Code() ErrorCode { return ErrCodeValidation }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// CapacityError is returned when a comparison set is already full.
type CapacityError struct {
	Limit int `json:"limit"`
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("comparison set is full (max %d properties)", e.Limit)
}

// Code returns ErrCodeCapacity.
func (e *CapacityError) Code() ErrorCode { return ErrCodeCapacity }

// NotFoundError is returned when a comparison entry or set does not exist.
type NotFoundError struct {
	Resource string `json:"resource"`
	ID       string `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Code returns ErrCodeNotFound.
func (e *NotFoundError) Code() ErrorCode { return ErrCodeNotFound }

// ErrCodeInternal is reported for errors outside the taxonomy above.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// CodeOf returns the ErrorCode carried by err, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ErrCodeInternal
}
