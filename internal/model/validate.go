package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateReminder checks a Reminder for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the reminder is
// valid. Name uniqueness is checked at the registry level, not here.
func ValidateReminder(r *Reminder) error {
	var ve ValidationError

	if strings.TrimSpace(r.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}

	if strings.TrimSpace(r.Tag) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "tag", Message: "is required"})
	}

	if r.Interval < 1 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "interval",
			Message: fmt.Sprintf("must be at least 1, got %d", r.Interval),
		})
	}

	if !r.Unit.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "unit",
			Message: fmt.Sprintf("invalid value %q", r.Unit),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
