package service

import "errors"

// Common service errors
var (
	// ErrItemNotFound is returned when a production item is not found
	ErrItemNotFound = errors.New("production item not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownStage is returned when a stage name is not one of the four fixed stages
	ErrUnknownStage = errors.New("unknown stage")
)
