package domain

import "errors"

// Error kinds for the conversation turn pipeline. None of these may leave
// the profile or cursor half-mutated: a turn either applies fully or not
// at all.
var (
	// ErrExtraction marks a malformed or unavailable extraction adapter
	// response. Non-fatal: counted per session, more than 3 consecutive
	// occurrences force a full session reset.
	ErrExtraction = errors.New("extraction failed")

	// ErrGeneration marks a question generation failure. Always absorbed
	// by the deterministic fallback, never shown to the user.
	ErrGeneration = errors.New("question generation failed")

	// ErrRateLimited marks an exhausted adapter call budget. Surfaced as a
	// transient-failure reply; the turn leaves the session untouched.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrPersistence marks a storage write failure. Logged, the user is
	// told the save did not happen, the session continues.
	ErrPersistence = errors.New("persistence failed")

	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = errors.New("session not found")
)
