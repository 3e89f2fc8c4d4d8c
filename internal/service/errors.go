package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDate is returned when a date string is not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidTime is returned when a time string is not HH:MM
	ErrInvalidTime = errors.New("invalid time of day")
)
