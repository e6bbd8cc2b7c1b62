package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DefaultFileName is the session document written next to the binary's working directory
const DefaultFileName = "config.json"

// Store persists the session document
type Store interface {
	// Load reads the stored document. It returns ErrNotFound when nothing has been saved yet.
	Load() (Config, error)

	// Save overwrites the stored document. Failures wrap ErrPersist.
	Save(cfg Config) error

	// Location describes where the document lives, for display
	Location() string
}

// FileStore keeps the session document as a JSON file
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file store. An empty path means ./config.json.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	return &FileStore{path: path}
}

// Path returns the file path backing the store
func (s *FileStore) Path() string {
	return s.path
}

// Location implements Store
func (s *FileStore) Location() string {
	if abs, err := filepath.Abs(s.path); err == nil {
		return abs
	}
	return s.path
}

// Load reads and parses the session file
func (s *FileStore) Load() (Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotFound
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	return decode(data)
}

// Save writes the whole document, replacing the previous file atomically
func (s *FileStore) Save(cfg Config) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrPersist, tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: chmod %s: %w", ErrPersist, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrPersist, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrPersist, s.path, err)
	}

	return nil
}

// LoadOrDefault loads the session document and falls back to an empty
// config when it is missing or unreadable
func LoadOrDefault(store Store, logger zerolog.Logger) Config {
	cfg, err := store.Load()
	if err == nil {
		return cfg
	}

	if errors.Is(err, ErrNotFound) {
		logger.Debug().Str("location", store.Location()).Msg("No saved session, starting fresh")
	} else {
		logger.Warn().Err(err).Str("location", store.Location()).Msg("Ignoring unreadable session")
	}
	return Config{}
}

// LoadStrict loads the session document. A missing document yields an empty
// config; any other failure is returned.
func LoadStrict(store Store) (Config, error) {
	cfg, err := store.Load()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to load session from %s: %w", store.Location(), err)
	}
	return cfg, nil
}

func encode(cfg Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	return append(data, '\n'), nil
}

func decode(data []byte) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return cfg, nil
}
