package ingestion

import "errors"

var (
	// ErrNotFound indicates a missing job or document. Ownership failures on
	// the trigger and status paths surface as ErrNotFound too, so callers
	// cannot probe for the existence of other owners' documents.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
