package entity

import "errors"

// Failure taxonomy for the booking core. All of these are expected,
// recoverable outcomes: the caller gets the error, state is unchanged.
var (
	// ErrInvalidTransition: requested status change not permitted from the
	// booking's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPaymentRequired: transition guard failed because the booking has no
	// completed payment covering its total amount.
	ErrPaymentRequired = errors.New("valid payment required")

	// ErrCapacityExceeded: slot admission denied by a capacity rule.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")

	// ErrValidation: a required input is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrConcurrencyConflict: two operations raced on the same booking; the
	// caller should retry the whole operation.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")

	// ErrNotFound: referenced record does not exist.
	ErrNotFound = errors.New("not found")
)
