package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflicting status transition")

	// Generation pipeline errors
	ErrSubmission         = errors.New("generation request rejected")
	ErrGeneration         = errors.New("generation failed")
	ErrGenerationTimeout  = errors.New("generation timed out")
	ErrUnrecognizedResult = errors.New("unrecognized generation result")

	// Publishing errors
	ErrPublish = errors.New("publish failed")

	// Infrastructure errors
	ErrInvalidExecContext = errors.New("invalid database execution context")
)
