package dialog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/movieclient/movieapi"
)

// Result is what a dispatched outcome produced for display
type Result struct {
	Message string
	Movies  []movieapi.Movie
	Listed  bool
}

// Dispatcher routes outcomes to the movie API
type Dispatcher struct {
	api    movieapi.API
	logger zerolog.Logger
}

// NewDispatcher creates a dispatcher around api
func NewDispatcher(api movieapi.API, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		api:    api,
		logger: logger,
	}
}

// Dispatch performs the operation described by outcome
func (d *Dispatcher) Dispatch(ctx context.Context, outcome Outcome) (Result, error) {
	d.logger.Debug().Str("outcome", fmt.Sprintf("%T", outcome)).Msg("Dispatching dialog outcome")

	switch o := outcome.(type) {
	case RegisterOutcome:
		if err := d.api.Register(ctx, o.Username, o.Password, o.Role); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Registered %s as %s. Log in to continue.", o.Username, o.Role)}, nil

	case LoginOutcome:
		if err := d.api.Login(ctx, o.Username, o.Password); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Logged in as %s.", o.Username)}, nil

	case LogoutOutcome:
		if err := d.api.Logout(ctx); err != nil {
			return Result{}, err
		}
		return Result{Message: "Logged out."}, nil

	case MovieOutcome:
		return d.dispatchMovie(ctx, o)

	case ListOutcome:
		var movies []movieapi.Movie
		var err error
		if o.All {
			movies, err = d.api.ListMovies(ctx)
		} else {
			movies, err = d.api.ListMovie(ctx, o.ID)
		}
		if err != nil {
			return Result{}, err
		}
		return Result{Movies: movies, Listed: true}, nil

	case BaseURLOutcome:
		if err := d.api.SetBaseURL(o.URL); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Server URL set to %s.", d.api.Session().BaseURL)}, nil

	case NoOutcome:
		return Result{}, nil

	default:
		return Result{}, fmt.Errorf("unhandled dialog outcome %T", outcome)
	}
}

func (d *Dispatcher) dispatchMovie(ctx context.Context, o MovieOutcome) (Result, error) {
	switch o.Action {
	case MovieCreate:
		if err := d.api.CreateMovie(ctx, o.Movie); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Created %s.", o.Movie)}, nil

	case MovieUpdate:
		if err := d.api.UpdateMovie(ctx, o.Movie); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Updated movie %d.", o.Movie.ID)}, nil

	case MovieDelete:
		if err := d.api.DeleteMovie(ctx, o.Movie.ID); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Deleted movie %d.", o.Movie.ID)}, nil

	default:
		return Result{}, fmt.Errorf("unknown movie action %d", o.Action)
	}
}
