package model

import "errors"

var (
	// ErrInvalidInstance is returned when a team count cannot form a single round-robin
	ErrInvalidInstance = errors.New("invalid instance")
	// ErrMalformedAssignment is returned when a raw assignment cannot be decoded into exactly one game per cell
	ErrMalformedAssignment = errors.New("malformed assignment")
	// ErrMalformedResults is returned when a results file does not follow the expected shape
	ErrMalformedResults = errors.New("malformed results")
)
