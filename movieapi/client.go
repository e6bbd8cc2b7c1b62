package movieapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/s0up4200/movieclient/session"
)

// maxErrorMessage bounds the body excerpt kept in APIError.Message
const maxErrorMessage = 200

// Client is a session-aware client for the movie server.
// It owns the session document and the last fetched movie list.
type Client struct {
	mu         sync.Mutex
	store      session.Store
	cfg        session.Config
	movies     []Movie
	httpClient *http.Client
	userAgent  string
	authScheme string
	logger     zerolog.Logger
}

// NewClient creates a new movie server client around a loaded session
func NewClient(store session.Store, cfg session.Config, logger zerolog.Logger, opts ...Option) *Client {
	cfg.BaseURL = normalizeBaseURL(cfg.BaseURL)

	client := &Client{
		store: store,
		cfg:   cfg,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// request describes a single call to the movie server
type request struct {
	op     string
	method string
	path   string
	body   any
	auth   bool
}

// do performs an HTTP request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request: %w", r.op, err)
		}
		body = bytes.NewReader(data)
	}

	url := c.cfg.BaseURL + r.path
	req, err := http.NewRequestWithContext(ctx, r.method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to create request: %w", ErrRemote, r.op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth {
		req.Header.Set("Authorization", c.authorization())
	}

	c.logger.Debug().
		Str("op", r.op).
		Str("method", r.method).
		Str("url", url).
		Msg("Making movie API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: request failed: %w", ErrRemote, r.op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read response body: %w", ErrRemote, r.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Op:            r.op,
			StatusCode:    resp.StatusCode,
			Message:       errorMessage(data),
			Body:          string(data),
			Authenticated: r.auth,
		}
	}

	return data, nil
}

// protected performs an authenticated request. A 401 clears and persists the
// stored token before the error is returned.
func (c *Client) protected(ctx context.Context, r request) ([]byte, error) {
	r.auth = true

	data, err := c.do(ctx, r)
	if err == nil {
		return data, nil
	}

	if errors.Is(err, ErrUnauthorized) {
		c.logger.Warn().Str("op", r.op).Msg("Server rejected the session token, clearing it")
		if perr := c.commit(c.cfg.WithToken("")); perr != nil {
			return nil, errors.Join(err, perr)
		}
	}

	return nil, err
}

// commit replaces the session document and writes it to the store
func (c *Client) commit(cfg session.Config) error {
	c.cfg = cfg

	if err := c.store.Save(cfg); err != nil {
		if !errors.Is(err, session.ErrPersist) {
			err = fmt.Errorf("%w: %w", session.ErrPersist, err)
		}
		c.logger.Error().Err(err).Str("location", c.store.Location()).Msg("Failed to persist session")
		return err
	}

	return nil
}

func (c *Client) authorization() string {
	token := c.cfg.Creds.CurrentToken
	if c.authScheme == "" {
		return token
	}
	return c.authScheme + " " + token
}

func (c *Client) requireBaseURL() error {
	if c.cfg.BaseURL == "" {
		return ErrNoBaseURL
	}
	return nil
}

// Register creates a new account on the server
func (c *Client) Register(ctx context.Context, username, password string, role Role) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireBaseURL(); err != nil {
		return err
	}
	if err := validateCredentials(username, password); err != nil {
		return err
	}
	if !role.IsValid() {
		return fmt.Errorf("%w: role is required", ErrValidation)
	}

	_, err := c.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/register",
		body:   registerRequest{Username: username, Password: password, Role: role},
	})
	if err != nil {
		return err
	}

	c.logger.Info().Str("username", username).Stringer("role", role).Msg("Registered account")
	return nil
}

// Login exchanges credentials for a session token and persists it
func (c *Client) Login(ctx context.Context, username, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireBaseURL(); err != nil {
		return err
	}
	if err := validateCredentials(username, password); err != nil {
		return err
	}

	data, err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/login",
		body:   loginRequest{Username: username, Password: password},
	})
	if err != nil {
		return err
	}

	token, err := parseToken(data)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	cfg := c.cfg
	cfg.Creds = session.Credentials{
		Username:     username,
		Password:     password,
		CurrentToken: token,
	}
	if err := c.commit(cfg); err != nil {
		return err
	}

	c.logger.Info().Str("username", username).Msg("Logged in")
	return nil
}

// Logout ends the session on the server and clears the stored token.
// The token is kept when the server does not confirm the logout.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireBaseURL(); err != nil {
		return err
	}

	_, err := c.protected(ctx, request{
		op:     "logout",
		method: http.MethodPost,
		path:   "/logout",
	})
	if err != nil {
		return err
	}

	if err := c.commit(c.cfg.WithToken("")); err != nil {
		return err
	}

	c.logger.Info().Str("username", c.cfg.Creds.Username).Msg("Logged out")
	return nil
}

// CreateMovie adds a movie. The sentinel movie is accepted without contacting the server.
func (c *Client) CreateMovie(ctx context.Context, movie Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireBaseURL(); err != nil {
		return err
	}
	if movie.IsSentinel() {
		c.logger.Debug().Msg("Skipping create for unselected movie")
		return nil
	}

	_, err := c.protected(ctx, request{
		op:     "create movie",
		method: http.MethodPost,
		path:   "/movie/create",
		body:   movie,
	})
	if err != nil {
		return err
	}

	c.logger.Info().Str("title", movie.Title).Msg("Created movie")
	return nil
}

// ListMovies fetches the whole catalog and replaces the cached list
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireBaseURL(); err != nil {
		return nil, err
	}

	return c.list(ctx, "list movies", "/movie/list", func(data []byte) ([]Movie, error) {
		var movies []Movie
		if err := json.Unmarshal(data, &movies); err != nil {
			return nil, err
		}
		return movies, nil
	})
}

// ListMovie fetches a single movie and replaces the cached list with it.
// The sentinel id returns an empty list without contacting the server.
func (c *Client) ListMovie(ctx context.Context, id int) ([]Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireBaseURL(); err != nil {
		return nil, err
	}
	if id == NoMovieID {
		return []Movie{}, nil
	}

	return c.list(ctx, "list movie", fmt.Sprintf("/movie/list/%d", id), func(data []byte) ([]Movie, error) {
		var movie Movie
		if err := json.Unmarshal(data, &movie); err != nil {
			return nil, err
		}
		return []Movie{movie}, nil
	})
}

// list fetches movies from path. Any failure empties the cache.
func (c *Client) list(ctx context.Context, op, path string, decode func([]byte) ([]Movie, error)) ([]Movie, error) {
	data, err := c.protected(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   path,
	})
	if err != nil {
		c.movies = nil
		return nil, err
	}

	movies, err := decode(data)
	if err != nil {
		c.movies = nil
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, op, err)
	}
	if movies == nil {
		movies = []Movie{}
	}

	c.movies = movies
	c.logger.Debug().Int("count", len(movies)).Msg("Retrieved movies")

	return slices.Clone(movies), nil
}

// UpdateMovie replaces a movie. Sentinel and zero-value movies are accepted
// without contacting the server.
func (c *Client) UpdateMovie(ctx context.Context, movie Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireBaseURL(); err != nil {
		return err
	}
	if movie.IsSentinel() || movie.IsZero() {
		c.logger.Debug().Msg("Skipping update for unselected movie")
		return nil
	}

	_, err := c.protected(ctx, request{
		op:     "update movie",
		method: http.MethodPost,
		path:   fmt.Sprintf("/movie/update/%d", movie.ID),
		body:   movie,
	})
	if err != nil {
		return err
	}

	c.logger.Info().Int("movie_id", movie.ID).Msg("Updated movie")
	return nil
}

// DeleteMovie removes a movie. The sentinel id is accepted without contacting the server.
func (c *Client) DeleteMovie(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireBaseURL(); err != nil {
		return err
	}
	if id == NoMovieID {
		c.logger.Debug().Msg("Skipping delete for unselected movie")
		return nil
	}

	_, err := c.protected(ctx, request{
		op:     "delete movie",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/movie/delete/%d", id),
	})
	if err != nil {
		return err
	}

	c.logger.Info().Int("movie_id", id).Msg("Deleted movie")
	return nil
}

// SetBaseURL changes the server address and persists the session
func (c *Client) SetBaseURL(baseURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg := c.cfg
	cfg.BaseURL = normalizeBaseURL(baseURL)
	return c.commit(cfg)
}

// Movies returns a copy of the last fetched movie list
func (c *Client) Movies() []Movie {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.movies)
}

// Session returns a copy of the session document
func (c *Client) Session() session.Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cfg
}

// State returns the derived session state
func (c *Client) State() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cfg.State()
}

func validateCredentials(username, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

// normalizeBaseURL trims whitespace and trailing slashes
func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// parseToken extracts the session token from a login response
func parseToken(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%w: response is not JSON", ErrDecode)
	}

	token := gjson.GetBytes(data, "token")
	if token.Type != gjson.String || token.String() == "" {
		return "", fmt.Errorf("%w: response has no token", ErrDecode)
	}
	return token.String(), nil
}

// errorMessage picks a human-readable message out of a failure body
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, key := range []string{"message", "error", "detail"} {
			if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}

	msg := []rune(strings.TrimSpace(string(body)))
	if len(msg) > maxErrorMessage {
		return string(msg[:maxErrorMessage]) + "..."
	}
	return string(msg)
}
