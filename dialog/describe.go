package dialog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/s0up4200/movieclient/movieapi"
	"github.com/s0up4200/movieclient/session"
)

// Describe turns an operation error into a message for the status area
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *movieapi.APIError

	switch {
	case errors.Is(err, session.ErrPersist):
		return fmt.Sprintf("The session could not be saved and the client cannot continue: %v", err)
	case errors.Is(err, movieapi.ErrNoBaseURL):
		return "No server URL is configured. Set one with the url action first."
	case errors.Is(err, movieapi.ErrValidation):
		return fmt.Sprintf("Please check your input: %v", err)
	case errors.Is(err, movieapi.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, movieapi.ErrDecode):
		return "The server sent a response that could not be read."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server did not respond in time."
	case errors.As(err, &apiErr):
		return describeAPIError(apiErr)
	case errors.Is(err, movieapi.ErrRemote):
		return fmt.Sprintf("Could not reach the server: %v", err)
	default:
		return err.Error()
	}
}

func describeAPIError(err *movieapi.APIError) string {
	switch err.StatusCode {
	case http.StatusUnauthorized:
		return "The server rejected the username or password."
	case http.StatusForbidden:
		return "You are not allowed to do that."
	case http.StatusNotFound:
		return "The requested movie does not exist."
	case http.StatusConflict:
		return fmt.Sprintf("The server refused the request: %s", err.Message)
	}

	if err.Message != "" {
		return fmt.Sprintf("The server returned an error (%d): %s", err.StatusCode, err.Message)
	}
	return fmt.Sprintf("The server returned an error (%d %s).", err.StatusCode, http.StatusText(err.StatusCode))
}

// IsTerminal reports whether err leaves the client unable to continue
func IsTerminal(err error) bool {
	return errors.Is(err, session.ErrPersist)
}
