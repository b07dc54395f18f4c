package service

import "errors"

// Expected failure classes. Handlers map these to HTTP statuses;
// anything else is reported as a generic server error so storage
// detail never reaches a client.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("not allowed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("invalid input")
)
