package srs

import "errors"

// Sentinel errors for the srs package. Check with errors.Is.
var (
	// ErrInvalidRating marks a rating outside the closed enum. Defensive:
	// unreachable through the typed API, reachable through deserialization.
	ErrInvalidRating = errors.New("srs: invalid rating")

	// ErrInvariantViolation marks a malformed ReviewCard (non-positive
	// stability, difficulty out of bounds, lapses > reps). It signals
	// upstream data corruption and is never repaired here.
	ErrInvariantViolation = errors.New("srs: card invariant violation")

	// ErrInvalidConfig marks scheduler configuration outside its legal ranges.
	ErrInvalidConfig = errors.New("srs: invalid config")
)
