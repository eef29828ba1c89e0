package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// tokenKey is the single key under which the bearer token is persisted.
const tokenKey = "token"

type (
	TokenStore interface {
		Load() (string, error)
		Save(token string) error
		Clear() error
	}

	FileTokenStore struct {
		path string
	}

	MemoryTokenStore struct {
		mu    sync.Mutex
		token string
	}
)

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// DefaultTokenPath is ~/.config/fittrack/session.json, or the OS equivalent.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "fittrack", "session.json")
}

// Load returns "" without error when nothing is stored.
func (f *FileTokenStore) Load() (string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil {
		return "", err
	}
	return values[tokenKey], nil
}

func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(map[string]string{tokenKey: token})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}

func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	return m.Save("")
}
