package service

import "errors"

// Sentinel errors shared across services. Handlers translate these into the
// response envelope; anything else is surfaced as a generic internal error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("no authenticated principal")
)
