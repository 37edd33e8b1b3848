package interfaces

import "errors"

var (
	// ErrStaleOrder is returned by conditional order writes when the stored version no longer
	// matches the one the caller read (or the order vanished). Callers re-read and retry.
	ErrStaleOrder = errors.New("order was modified concurrently")

	// ErrEmailAlreadyUsed is returned when another customer already holds the email.
	ErrEmailAlreadyUsed = errors.New("email already used")
)
