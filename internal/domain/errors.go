package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound               = errors.New("not found")
	ErrAlreadyExists          = errors.New("already exists")
	ErrValidation             = errors.New("validation error")
	ErrInvalidSessionState    = errors.New("invalid session state")
	ErrInsufficientVocabulary = errors.New("insufficient vocabulary")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ExtractionReason classifies why structured extraction failed after the
// single corrective retry was exhausted.
type ExtractionReason string

const (
	ExtractionMalformed          ExtractionReason = "malformed"
	ExtractionIncomplete         ExtractionReason = "incomplete"
	ExtractionCountMismatch      ExtractionReason = "count-mismatch"
	ExtractionGatewayUnreachable ExtractionReason = "gateway-unreachable"
)

// ExtractionError reports a failed extraction with enough context (stage,
// field) for the caller to decide the next action. It is surfaced only after
// the one corrective retry defined by the extraction flow.
type ExtractionError struct {
	Reason ExtractionReason
	Stage  string // "parse", "validate", "gateway"
	Field  string // offending field, when known
	Err    error  // underlying cause, may be nil
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extraction failed (%s) at %s", e.Reason, e.Stage)
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NewExtractionError creates an ExtractionError.
func NewExtractionError(reason ExtractionReason, stage, field string, err error) *ExtractionError {
	return &ExtractionError{Reason: reason, Stage: stage, Field: field, Err: err}
}
