package movieapi

import (
	"context"

	"github.com/s0up4200/movieclient/session"
)

// API defines the interface for movie server operations
type API interface {
	// Register creates an account; it does not log the caller in
	Register(ctx context.Context, username, password string, role Role) error

	// Login obtains and stores a session token
	Login(ctx context.Context, username, password string) error

	// Logout invalidates the stored session token
	Logout(ctx context.Context) error

	// CreateMovie adds a movie to the catalog
	CreateMovie(ctx context.Context, movie Movie) error

	// ListMovies fetches the full catalog
	ListMovies(ctx context.Context) ([]Movie, error)

	// ListMovie fetches a single movie by id
	ListMovie(ctx context.Context, id int) ([]Movie, error)

	// UpdateMovie replaces the movie with the same id
	UpdateMovie(ctx context.Context, movie Movie) error

	// DeleteMovie removes a movie by id
	DeleteMovie(ctx context.Context, id int) error

	// SetBaseURL changes and persists the server address
	SetBaseURL(baseURL string) error

	// Session returns a copy of the current session document
	Session() session.Config

	// State returns the derived session state
	State() session.State
}

var _ API = (*Client)(nil)
