package interfaces

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")

	// ErrPreconditionFailed is returned when a conditional write matched no
	// document because its status gate did not hold.
	ErrPreconditionFailed = errors.New("precondition failed")
)
