package movieapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNoBaseURL indicates the session has no base URL configured
	ErrNoBaseURL = errors.New("no base URL provided")
	// ErrValidation indicates required user input is missing or invalid
	ErrValidation = errors.New("invalid input")
	// ErrUnauthorized indicates the server rejected the session token
	ErrUnauthorized = errors.New("unauthorized: session is no longer valid")
	// ErrRemote indicates a non-success response or a transport failure
	ErrRemote = errors.New("remote request failed")
	// ErrDecode indicates the response body could not be parsed
	ErrDecode = errors.New("malformed response body")
)

// APIError represents a non-2xx response from the movie server
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Body       string

	// Authenticated is set when the request carried the session token
	Authenticated bool
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Op == "" {
		return fmt.Sprintf("movie API error: status %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: movie API error: status %d: %s", e.Op, e.StatusCode, msg)
}

// Unwrap classifies the error. A 401 on an authenticated request means the
// session was invalidated; everything else is a remote failure.
func (e *APIError) Unwrap() error {
	if e.Authenticated && e.IsUnauthorized() {
		return ErrUnauthorized
	}
	return ErrRemote
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the server invalidated the session token.
// Only 401 counts; 403 means the token is valid but lacks privileges.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}
