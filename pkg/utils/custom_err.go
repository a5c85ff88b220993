package utils

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDuration = errors.New("duration must be greater than 0")
	ErrDatabaseError   = errors.New("database error")
	RecordNotFound     = errors.New("record not found")

	// Text generation. None of these ever abort a run; the composer falls back.
	ErrGenerationDisabled    = errors.New("text generation is not configured")
	ErrGenerationUnavailable = errors.New("text generation service unavailable")
	ErrMalformedGeneration   = errors.New("text generation returned malformed JSON")
	ErrLowVariety            = errors.New("generated itinerary failed the variety check")

	ErrJobAlreadyRunning = errors.New("itinerary job is already running")
)
