package movieapi

import (
	"fmt"
	"strings"
)

// NoMovieID marks "no movie selected". Mutating calls for it are no-ops.
const NoMovieID = -1

// Movie represents a movie record on the server
type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
}

// NoMovie is the sentinel movie the UI passes when nothing is selected
var NoMovie = Movie{ID: NoMovieID}

// IsZero reports whether every field holds its default value
func (m Movie) IsZero() bool {
	return m == Movie{}
}

// IsSentinel reports whether the movie carries the reserved "no movie" id
func (m Movie) IsSentinel() bool {
	return m.ID == NoMovieID
}

// String returns a short display form of the movie
func (m Movie) String() string {
	if m.ReleaseYear > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.ReleaseYear)
	}
	return m.Title
}

// Role represents the privilege class requested at registration
type Role int

const (
	// RoleUnset means no role was chosen
	RoleUnset Role = iota
	// RoleUser is a regular account
	RoleUser
	// RoleAdmin is an administrative account
	RoleAdmin
)

// String returns the wire representation of a Role
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return ""
	}
}

// IsValid reports whether the role can be sent to the server
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: role is not set", ErrValidation)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// ParseRole parses a role name case-insensitively
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUnset, fmt.Errorf("%w: unknown role %q (must be 'user' or 'admin')", ErrValidation, s)
	}
}

// registerRequest is the body of POST /register
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// loginRequest is the body of POST /login
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
