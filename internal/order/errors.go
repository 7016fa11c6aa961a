package order

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("order modified concurrently")

	// errDuplicateNumber signals a lost race on the order_number unique
	// index; the engine regenerates the number and retries.
	errDuplicateNumber = errors.New("duplicate order number")
)
