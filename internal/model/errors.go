package model

import "errors"

// Failure taxonomy. Every one of these is recovered locally, at the smallest
// possible scope (one URL, one claim, one batch), and converted into a
// placeholder result. Only structurally invalid input to the pipeline is
// surfaced as a request-level rejection.
var (
	// ErrExtractionFailure: no content could be extracted from a URL
	ErrExtractionFailure = errors.New("extraction failure")

	// ErrSearchFailure: all search providers exhausted without results
	ErrSearchFailure = errors.New("search failure")

	// ErrGenerationFailure: a collaborator call timed out or returned garbage
	ErrGenerationFailure = errors.New("generation failure")

	// ErrValidationFailure: a collaborator response violates its schema
	ErrValidationFailure = errors.New("validation failure")

	// ErrEmptyInput is the only request-level rejection: no URLs or no
	// claims were submitted at all.
	ErrEmptyInput = errors.New("empty input")
)
