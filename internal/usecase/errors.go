package usecase

import "errors"

// Sentinel errors for the service layer; handlers map them to HTTP status
// codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrBusinessRule = errors.New("business rule violated")
	ErrCapacityFull = errors.New("bus capacity reached")

	// ErrGateway is surfaced to callers as a generic internal error; the
	// gateway diagnostics stay in the logs.
	ErrGateway = errors.New("payment gateway failure")
)
