package domain

import "errors"

var (
	// ErrNotReady signals that the sample collection is still being seeded.
	ErrNotReady = errors.New("not ready")
	// ErrMalformedAggregation signals a store response missing an expected aggregation.
	ErrMalformedAggregation = errors.New("malformed aggregation response")
	// ErrAlreadyExists signals that the sales collection is already present.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidRecord signals a record that cannot be stored.
	ErrInvalidRecord = errors.New("invalid record")
)
