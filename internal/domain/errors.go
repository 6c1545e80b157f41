package domain

import "errors"

// Common errors returned while building the comparison sample.
var (
	// ErrSourceUnavailable indicates the row source could not be
	// reached at all, as opposed to failing partway through a fetch.
	// Callers treat both the same way but log them differently.
	ErrSourceUnavailable = errors.New("row source unavailable")

	// ErrInvalidRow indicates a row violates the sample invariants.
	ErrInvalidRow = errors.New("invalid comparison row")

	// ErrMalformedSample indicates an embedded sample document could
	// not be decoded.
	ErrMalformedSample = errors.New("malformed sample document")
)
