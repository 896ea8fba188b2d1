package model

import "errors"

var (
	// ErrNotFound is returned when an entity is required to exist and does not.
	ErrNotFound = errors.New("entity was not found")

	// ErrWriteRejected is returned when the store acknowledges a write without applying it.
	ErrWriteRejected = errors.New("write was rejected by the store")

	// ErrInvalidArgument is returned when a use-case argument cannot be interpreted.
	ErrInvalidArgument = errors.New("invalid argument")
)
