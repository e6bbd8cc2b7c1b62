package session

// Credentials holds the user's login details and the token issued by the server
type Credentials struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	CurrentToken string `json:"current_token"`
}

// Config is the persisted session document
type Config struct {
	BaseURL string      `json:"base_url"`
	Creds   Credentials `json:"creds"`
}

// State represents whether the client currently holds a session token
type State int

const (
	// Unauthenticated means no token is stored
	Unauthenticated State = iota
	// Authenticated means a token is stored
	Authenticated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// StateOf derives the session state from a set of credentials
func StateOf(creds Credentials) State {
	if creds.CurrentToken == "" {
		return Unauthenticated
	}
	return Authenticated
}

// State returns the derived session state of the config
func (c Config) State() State {
	return StateOf(c.Creds)
}

// Authenticated reports whether a session token is present
func (c Config) Authenticated() bool {
	return c.State() == Authenticated
}

// WithToken returns a copy of the config carrying the given token
func (c Config) WithToken(token string) Config {
	c.Creds.CurrentToken = token
	return c
}
