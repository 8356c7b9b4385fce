package prune

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrNoSnapshot is returned when no source quality snapshot has been stored.
	ErrNoSnapshot = errors.New("no source quality snapshot stored")
)
