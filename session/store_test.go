package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStateOf(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  State
	}{
		{
			name:  "empty credentials",
			creds: Credentials{},
			want:  Unauthenticated,
		},
		{
			name:  "username without token",
			creds: Credentials{Username: "u", Password: "p"},
			want:  Unauthenticated,
		},
		{
			name:  "token present",
			creds: Credentials{CurrentToken: "abc123"},
			want:  Authenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.creds))
			assert.Equal(t, tt.want, Config{Creds: tt.creds}.State())
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}

func TestFileStoreRoundTrip(t *testing.T) {
	configs := []Config{
		{},
		{BaseURL: "http://localhost:8080"},
		{
			BaseURL: "https://movies.example.com/api",
			Creds: Credentials{
				Username:     "alice",
				Password:     "s3cret \"quoted\"",
				CurrentToken: "abc123",
			},
		},
	}

	for _, cfg := range configs {
		store := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
		require.NoError(t, store.Save(cfg))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	}
}

func TestFileStoreWireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(Config{
		BaseURL: "http://localhost:8080",
		Creds:   Credentials{Username: "u", Password: "p", CurrentToken: "t"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"base_url": "http://localhost:8080",
		"creds": {"username": "u", "password": "p", "current_token": "t"}
	}`, string(data))
}

func TestFileStoreLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

		cfg, err := NewFileStore(path).Load()
		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := NewFileStore(path).Load()
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestFileStoreSaveFailure(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing-dir", "config.json"))

	err := store.Save(Config{BaseURL: "http://localhost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
}

func TestFileStoreOverwrite(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "config.json"))

	require.NoError(t, store.Save(Config{BaseURL: "http://first", Creds: Credentials{CurrentToken: "one"}}))
	require.NoError(t, store.Save(Config{BaseURL: "http://second"}))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Config{BaseURL: "http://second"}, cfg)
}

func TestLoadOrDefault(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("corrupt falls back to default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

		assert.Equal(t, Config{}, LoadOrDefault(NewFileStore(path), logger))
	})

	t.Run("missing falls back to default", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
		assert.Equal(t, Config{}, LoadOrDefault(store, logger))
	})

	t.Run("valid document is returned", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
		want := Config{BaseURL: "http://localhost", Creds: Credentials{CurrentToken: "x"}}
		require.NoError(t, store.Save(want))

		assert.Equal(t, want, LoadOrDefault(store, logger))
	})
}

func TestLoadStrict(t *testing.T) {
	t.Run("missing is not an error", func(t *testing.T) {
		cfg, err := LoadStrict(NewFileStore(filepath.Join(t.TempDir(), "config.json")))
		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("corrupt is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		_, err := LoadStrict(NewFileStore(path))
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	store := NewKeyringStore("", "")
	assert.Equal(t, "keyring://movieclient/session", store.Location())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	want := Config{
		BaseURL: "http://localhost:8080",
		Creds:   Credentials{Username: "bob", Password: "pw", CurrentToken: "tok"},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
