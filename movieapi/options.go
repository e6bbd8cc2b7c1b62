package movieapi

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout is applied to every request unless overridden
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request unless overridden
	DefaultUserAgent = "Simple REST Client/1.0.0"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
// Its timeout is left untouched.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the HTTP client timeout. It applies to a copy, so a
// client passed to WithHTTPClient is never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			httpClient := *c.httpClient
			httpClient.Timeout = timeout
			c.httpClient = &httpClient
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithAuthScheme prefixes the token in the Authorization header, e.g. "Bearer".
// An empty scheme sends the raw token.
func WithAuthScheme(scheme string) Option {
	return func(c *Client) {
		c.authScheme = scheme
	}
}
