package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "clipshare-clipctl"
	keyringUser    = "session"
)

// SessionStore persists the opaque session token between invocations.
type SessionStore interface {
	Save(token string) error
	Load() (string, error)
	Delete() error
}

// NewStore selects the storage backend: "keychain", "file", or "" for
// keychain with file fallback when no keyring daemon is available.
func NewStore(backend, filePath string) (SessionStore, error) {
	switch backend {
	case "keychain":
		return &KeyringStore{}, nil
	case "file":
		return &FileStore{Path: filePath}, nil
	case "":
		return &autoStore{primary: &KeyringStore{}, fallback: &FileStore{Path: filePath}}, nil
	default:
		return nil, fmt.Errorf("unknown token storage backend: %s", backend)
	}
}

// KeyringStore keeps the session token in the OS keychain.
type KeyringStore struct{}

func (s *KeyringStore) Save(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("failed to store session in keychain: %w", err)
	}
	return nil
}

func (s *KeyringStore) Load() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("failed to read session from keychain: %w", err)
	}
	return token, nil
}

func (s *KeyringStore) Delete() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoSession
		}
		return fmt.Errorf("failed to remove session from keychain: %w", err)
	}
	return nil
}

type storedSession struct {
	Token string `json:"token"`
}

// FileStore keeps the session token in a 0600 JSON file for systems without
// a usable keyring.
type FileStore struct {
	Path string
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	content, err := json.Marshal(storedSession{Token: token})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return os.WriteFile(s.Path, content, 0o600)
}

func (s *FileStore) Load() (string, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", err
	}
	var session storedSession
	if err := json.Unmarshal(content, &session); err != nil {
		return "", fmt.Errorf("failed to parse session file: %w", err)
	}
	if session.Token == "" {
		return "", ErrNoSession
	}
	return session.Token, nil
}

func (s *FileStore) Delete() error {
	if err := os.Remove(s.Path); err != nil {
		if os.IsNotExist(err) {
			return ErrNoSession
		}
		return err
	}
	return nil
}

// autoStore prefers the keychain and falls back to the file backend when the
// keychain is unavailable (headless hosts, missing dbus).
type autoStore struct {
	primary  SessionStore
	fallback SessionStore
}

func (s *autoStore) Save(token string) error {
	if err := s.primary.Save(token); err != nil {
		return s.fallback.Save(token)
	}
	return nil
}

func (s *autoStore) Load() (string, error) {
	token, err := s.primary.Load()
	if err == nil {
		return token, nil
	}
	if errors.Is(err, ErrNoSession) {
		return s.fallback.Load()
	}
	token, ferr := s.fallback.Load()
	if ferr != nil {
		return "", err
	}
	return token, nil
}

func (s *autoStore) Delete() error {
	err := s.primary.Delete()
	ferr := s.fallback.Delete()
	if err == nil || ferr == nil {
		return nil
	}
	return err
}
