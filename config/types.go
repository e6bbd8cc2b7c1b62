package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// APIConfig holds HTTP settings for talking to the movie server
type APIConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user_agent"`
	AuthScheme string        `mapstructure:"auth_scheme"`
}

// SessionConfig selects where the session document is persisted
type SessionConfig struct {
	Backend        string `mapstructure:"backend"`
	Path           string `mapstructure:"path"`
	StrictLoad     bool   `mapstructure:"strict_load"`
	KeyringService string `mapstructure:"keyring_service"`
	KeyringUser    string `mapstructure:"keyring_user"`
}

// FilterConfig contains named filter presets
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig contains self-update settings
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}

const (
	// BackendFile stores the session as a JSON file
	BackendFile = "file"
	// BackendKeyring stores the session in the OS keyring
	BackendKeyring = "keyring"
)
