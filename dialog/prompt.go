package dialog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/s0up4200/movieclient/movieapi"
	"github.com/s0up4200/movieclient/session"
)

// Prompter reads menu choices and form fields line by line
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a prompter reading from r and writing prompts to w
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(r),
		out:     w,
	}
}

// ask prints label and returns the trimmed answer.
// io.EOF is returned once the input is exhausted.
func (p *Prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Field asks for a single value outside of a form
func (p *Prompter) Field(label string) (string, error) {
	return p.ask(label)
}

// Menu shows the actions available in state and reads a choice by number or
// name. Unknown choices are asked again. End of input selects ActionQuit.
func (p *Prompter) Menu(state session.State) (Action, error) {
	actions := Actions(state)

	fmt.Fprintf(p.out, "\n[%s]\n", state)
	for i, action := range actions {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, action)
	}

	for {
		answer, err := p.ask("Choose an action")
		if errors.Is(err, io.EOF) {
			return ActionQuit, nil
		}
		if err != nil {
			return ActionQuit, err
		}

		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(actions) {
			return actions[n-1], nil
		}
		if action, ok := ParseAction(answer); ok {
			for _, offered := range actions {
				if offered == action {
					return action, nil
				}
			}
		}

		fmt.Fprintf(p.out, "Unknown choice %q\n", answer)
	}
}

// Form asks for the fields the action needs and returns the outcome.
// ActionQuit yields NoOutcome. Malformed numbers are reported as
// movieapi.ErrValidation.
func (p *Prompter) Form(action Action) (Outcome, error) {
	switch action {
	case ActionRegister:
		return p.registerForm()
	case ActionLogin:
		username, password, err := p.credentials()
		if err != nil {
			return nil, err
		}
		return LoginOutcome{Username: username, Password: password}, nil
	case ActionLogout:
		return LogoutOutcome{}, nil
	case ActionList:
		return p.listForm()
	case ActionCreate:
		movie, err := p.movieFields(false)
		if err != nil {
			return nil, err
		}
		return MovieOutcome{Action: MovieCreate, Movie: movie}, nil
	case ActionUpdate:
		movie, err := p.movieFields(true)
		if err != nil {
			return nil, err
		}
		return MovieOutcome{Action: MovieUpdate, Movie: movie}, nil
	case ActionDelete:
		id, err := p.number("Movie ID", false)
		if err != nil {
			return nil, err
		}
		return MovieOutcome{Action: MovieDelete, Movie: movieapi.Movie{ID: id}}, nil
	case ActionSetURL:
		url, err := p.ask("Server URL")
		if err != nil {
			return nil, err
		}
		return BaseURLOutcome{URL: url}, nil
	case ActionQuit:
		return NoOutcome{}, nil
	default:
		return nil, fmt.Errorf("unknown action %d", action)
	}
}

func (p *Prompter) credentials() (string, string, error) {
	username, err := p.ask("Username")
	if err != nil {
		return "", "", err
	}
	password, err := p.ask("Password")
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

func (p *Prompter) registerForm() (Outcome, error) {
	username, password, err := p.credentials()
	if err != nil {
		return nil, err
	}

	answer, err := p.ask("Role (user/admin) [user]")
	if err != nil {
		return nil, err
	}

	role := movieapi.RoleUser
	if answer != "" {
		role, err = movieapi.ParseRole(answer)
		if err != nil {
			return nil, err
		}
	}

	return RegisterOutcome{Username: username, Password: password, Role: role}, nil
}

func (p *Prompter) listForm() (Outcome, error) {
	answer, err := p.ask("Movie ID [all]")
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return ListOutcome{All: true}, nil
	}

	id, err := parseNumber("Movie ID", answer)
	if err != nil {
		return nil, err
	}
	return ListOutcome{ID: id}, nil
}

func (p *Prompter) movieFields(withID bool) (movieapi.Movie, error) {
	var movie movieapi.Movie
	var err error

	if withID {
		if movie.ID, err = p.number("Movie ID", false); err != nil {
			return movieapi.Movie{}, err
		}
	}
	if movie.Title, err = p.ask("Title"); err != nil {
		return movieapi.Movie{}, err
	}
	if movie.Description, err = p.ask("Description"); err != nil {
		return movieapi.Movie{}, err
	}
	if movie.ReleaseYear, err = p.number("Release year", true); err != nil {
		return movieapi.Movie{}, err
	}

	return movie, nil
}

// number reads an integer field. Blank input gives 0 when optional.
func (p *Prompter) number(label string, optional bool) (int, error) {
	answer, err := p.ask(label)
	if err != nil {
		return 0, err
	}
	if answer == "" && optional {
		return 0, nil
	}
	return parseNumber(label, answer)
}

func parseNumber(label, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", movieapi.ErrValidation, strings.ToLower(label), s)
	}
	return n, nil
}
