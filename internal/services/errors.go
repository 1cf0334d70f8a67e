package services

import "errors"

var (
	// ErrForbidden is returned before any mutation when the caller's role
	// does not allow the operation.
	ErrForbidden = errors.New("forbidden")

	ErrNotFound = errors.New("not found")

	// ErrValidation marks input errors so handlers can answer 400 instead
	// of 500.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateIdentity classifies an identity-create failure caused by
	// an email that already has an identity.
	ErrDuplicateIdentity = errors.New("identity already exists")

	// ErrReloadInFlight is returned when a directory reload is dropped
	// because another one is already running.
	ErrReloadInFlight = errors.New("reload already in flight")
)
