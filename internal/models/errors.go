package models

import "errors"

// Sentinel errors shared across the service and repository layers.
// Handlers translate them to HTTP status codes at the edge; internal
// storage details are never surfaced to callers.
var (
	// ErrInvalidInput indicates a malformed request body. No mutation is
	// ever performed before this is returned.
	ErrInvalidInput = errors.New("invalid inputs passed, please check your data")

	// ErrInvalidAddress indicates the address given to the resolver was
	// empty or blank. It is the only error the resolver returns.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrPlaceNotFound indicates the referenced place does not exist.
	ErrPlaceNotFound = errors.New("could not find place for the provided id")

	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("could not find user for the provided id")

	// ErrOperationFailed indicates a persistence or transaction failure.
	// A transaction aborted mid-flight rolls back completely, so no
	// partial write is observable when this is returned.
	ErrOperationFailed = errors.New("operation failed, please try again")
)
