package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout:   30 * time.Second,
			UserAgent: "Simple REST Client/1.0.0",
		},
		Session: SessionConfig{
			Backend: BackendFile,
			Path:    "config.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "Valid defaults",
			modify: func(cfg *Config) {},
		},
		{
			name: "Valid keyring backend",
			modify: func(cfg *Config) {
				cfg.Session.Backend = BackendKeyring
				cfg.Session.Path = ""
			},
		},
		{
			name: "Valid bearer scheme",
			modify: func(cfg *Config) {
				cfg.API.AuthScheme = "Bearer"
			},
		},
		{
			name: "Invalid auth scheme",
			modify: func(cfg *Config) {
				cfg.API.AuthScheme = "Basic"
			},
			wantErr: "invalid api.auth_scheme: Basic",
		},
		{
			name: "Negative timeout",
			modify: func(cfg *Config) {
				cfg.API.Timeout = -time.Second
			},
			wantErr: "api.timeout must not be negative",
		},
		{
			name: "Invalid backend",
			modify: func(cfg *Config) {
				cfg.Session.Backend = "sqlite"
			},
			wantErr: "invalid session.backend: sqlite",
		},
		{
			name: "File backend without path",
			modify: func(cfg *Config) {
				cfg.Session.Path = ""
			},
			wantErr: "session.path is required",
		},
		{
			name: "Empty preset expression",
			modify: func(cfg *Config) {
				cfg.Filter.Presets = map[string]string{"nineties": "  "}
			},
			wantErr: "filter preset 'nineties' has an empty expression",
		},
		{
			name: "Invalid logging level",
			modify: func(cfg *Config) {
				cfg.Logging.Level = "trace"
			},
			wantErr: "invalid logging level: trace",
		},
		{
			name: "Invalid logging format",
			modify: func(cfg *Config) {
				cfg.Logging.Format = "xml"
			},
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validate() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error message = %v, want message containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.API.UserAgent != "Simple REST Client/1.0.0" {
		t.Errorf("API.UserAgent = %q", cfg.API.UserAgent)
	}
	if cfg.Session.Backend != BackendFile || cfg.Session.Path != "config.json" {
		t.Errorf("Session = %+v, want file backend at config.json", cfg.Session)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movieclient.yaml")
	content := `
api:
  timeout: 5s
  auth_scheme: Bearer
session:
  backend: keyring
  keyring_service: movies-test
filter:
  presets:
    nineties: ReleaseYear >= 1990 and ReleaseYear < 2000
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, want 5s", cfg.API.Timeout)
	}
	if cfg.API.AuthScheme != "Bearer" {
		t.Errorf("API.AuthScheme = %q, want Bearer", cfg.API.AuthScheme)
	}
	if cfg.Session.Backend != BackendKeyring || cfg.Session.KeyringService != "movies-test" {
		t.Errorf("Session = %+v", cfg.Session)
	}
	// Defaults fill keys the file leaves out
	if cfg.Session.KeyringUser != "session" {
		t.Errorf("Session.KeyringUser = %q, want session", cfg.Session.KeyringUser)
	}
	if got := cfg.Filter.Presets["nineties"]; got != "ReleaseYear >= 1990 and ReleaseYear < 2000" {
		t.Errorf("Filter.Presets[nineties] = %q", got)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil || !strings.Contains(err.Error(), "error reading config") {
			t.Errorf("Load() error = %v, want read error", err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movieclient.yaml")
		if err := os.WriteFile(path, []byte("session:\n  backend: sqlite\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
			t.Errorf("Load() error = %v, want validation error", err)
		}
	})
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("MOVIECLIENT_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}
