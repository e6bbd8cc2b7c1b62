package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. Without an explicit path a missing
// file is not an error and the defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("movieclient")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".movieclient"))
		}

		// Check /etc
		v.AddConfigPath("/etc/movieclient/")
	}

	v.SetEnvPrefix("MOVIECLIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.user_agent", "Simple REST Client/1.0.0")
	v.SetDefault("api.auth_scheme", "")

	// Session defaults
	v.SetDefault("session.backend", BackendFile)
	v.SetDefault("session.path", "config.json")
	v.SetDefault("session.strict_load", false)
	v.SetDefault("session.keyring_service", "movieclient")
	v.SetDefault("session.keyring_user", "session")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "s0up4200/movieclient")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	switch cfg.API.AuthScheme {
	case "", "Bearer", "Token":
	default:
		return fmt.Errorf("invalid api.auth_scheme: %s (must be empty, 'Bearer' or 'Token')", cfg.API.AuthScheme)
	}

	switch cfg.Session.Backend {
	case BackendFile:
		if cfg.Session.Path == "" {
			return fmt.Errorf("session.path is required for the file backend")
		}
	case BackendKeyring:
	default:
		return fmt.Errorf("invalid session.backend: %s (must be 'file' or 'keyring')", cfg.Session.Backend)
	}

	for name, expr := range cfg.Filter.Presets {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
