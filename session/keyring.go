package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// DefaultKeyringService is the keyring service name used when none is configured
	DefaultKeyringService = "movieclient"
	// DefaultKeyringUser is the keyring account the document is stored under
	DefaultKeyringUser = "session"
)

// KeyringStore keeps the session document in the operating system keyring
type KeyringStore struct {
	service string
	user    string
}

var _ Store = (*KeyringStore)(nil)

// NewKeyringStore creates a keyring-backed store
func NewKeyringStore(service, user string) *KeyringStore {
	if service == "" {
		service = DefaultKeyringService
	}
	if user == "" {
		user = DefaultKeyringUser
	}
	return &KeyringStore{service: service, user: user}
}

// Location implements Store
func (s *KeyringStore) Location() string {
	return fmt.Sprintf("keyring://%s/%s", s.service, s.user)
}

// Load reads the document from the keyring
func (s *KeyringStore) Load() (Config, error) {
	data, err := keyring.Get(s.service, s.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Config{}, ErrNotFound
		}
		return Config{}, fmt.Errorf("could not read keyring entry: %w", err)
	}

	return decode([]byte(data))
}

// Save writes the document to the keyring
func (s *KeyringStore) Save(cfg Config) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}

	if err := keyring.Set(s.service, s.user, string(data)); err != nil {
		return fmt.Errorf("%w: keyring: %w", ErrPersist, err)
	}
	return nil
}
