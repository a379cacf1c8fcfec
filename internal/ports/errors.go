package ports

import "errors"

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrJobNotFound      = errors.New("job not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPartNotFound     = errors.New("part on order not found")
	ErrCallbackNotFound = errors.New("callback request not found")

	// ErrDuplicateIdentifier is returned when the store rejects an insert on a
	// tenant-scoped unique identifier.
	ErrDuplicateIdentifier = errors.New("identifier already in use")

	// ErrCounterExhausted is returned when a tenant counter has reached its
	// ceiling and cannot issue another number.
	ErrCounterExhausted = errors.New("tenant counter exhausted")

	// ErrStaleState is returned when a row changed status between the read
	// and the conditional write of a transition.
	ErrStaleState = errors.New("row changed concurrently")
)
