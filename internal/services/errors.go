package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrItemNotFound is returned when the reported item does not exist.
	ErrItemNotFound = errors.New("reported item not found")

	// ErrPromoNotFound is returned when no promo code matches the given code.
	ErrPromoNotFound = errors.New("promo code not found")

	// ErrPromoInactive is returned when a code exists but is inactive,
	// unpaid or expired. The three causes are deliberately collapsed into
	// one user-facing error.
	ErrPromoInactive = errors.New("promo code is not usable")

	// ErrInvalidTransition is returned when an operation requires the item
	// to be in a status it is not in.
	ErrInvalidTransition = errors.New("invalid item status transition")
)

// ValidationError carries per-field messages for inline display.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

func NewValidationError(details map[string]string) *ValidationError {
	return &ValidationError{Details: details}
}
