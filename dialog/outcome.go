// Package dialog turns interactive forms into typed outcomes and routes each
// outcome to the matching movie API operation.
package dialog

import (
	"github.com/s0up4200/movieclient/movieapi"
)

// Outcome is the result of a completed form. The set of variants is closed;
// Dispatcher handles each one explicitly.
type Outcome interface {
	outcome()
}

// RegisterOutcome carries the account to create
type RegisterOutcome struct {
	Username string
	Password string
	Role     movieapi.Role
}

// LoginOutcome carries the credentials to log in with
type LoginOutcome struct {
	Username string
	Password string
}

// LogoutOutcome requests the end of the current session
type LogoutOutcome struct{}

// MovieAction selects what a MovieOutcome does with its movie
type MovieAction int

const (
	MovieCreate MovieAction = iota
	MovieUpdate
	MovieDelete
)

// String returns the string representation of a MovieAction
func (a MovieAction) String() string {
	switch a {
	case MovieCreate:
		return "create"
	case MovieUpdate:
		return "update"
	case MovieDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MovieOutcome carries a movie to create, update or delete
type MovieOutcome struct {
	Action MovieAction
	Movie  movieapi.Movie
}

// ListOutcome requests the catalog, or a single movie when All is false
type ListOutcome struct {
	ID  int
	All bool
}

// BaseURLOutcome carries a new server address
type BaseURLOutcome struct {
	URL string
}

// NoOutcome means the form was dismissed
type NoOutcome struct{}

func (RegisterOutcome) outcome() {}
func (LoginOutcome) outcome()    {}
func (LogoutOutcome) outcome()   {}
func (MovieOutcome) outcome()    {}
func (ListOutcome) outcome()     {}
func (BaseURLOutcome) outcome()  {}
func (NoOutcome) outcome()       {}
