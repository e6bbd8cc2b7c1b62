package session

import "errors"

// Common errors returned by session stores.
var (
	// ErrNotFound indicates no session document has been saved yet.
	ErrNotFound = errors.New("session not found")

	// ErrPersist indicates the session document could not be written.
	// Callers should treat it as terminal for the running operation.
	ErrPersist = errors.New("failed to persist session")

	// ErrCorrupt indicates the stored document could not be parsed.
	ErrCorrupt = errors.New("session document is corrupt")
)
