// Package session persists the authenticated session between runs.
package session

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/user"
)

// storage keys, one entry per key
const (
	tokenKey  = "auth_token"
	userIDKey = "user_id"
	roleKey   = "role"
)

// State is the outcome of hydrating a stored session.
type State int

const (
	// StateEmpty means no stored session: at least one key is missing.
	StateEmpty State = iota
	// StateValid means all keys are present and the role is known.
	StateValid
	// StateCorrupt means all keys are present but the role is unknown.
	StateCorrupt
)

// Session is the hydrated session data.
type Session struct {
	Token  string
	UserID string
	Role   user.Role
}

// Storage is a key/value store holding one value per session key.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store reads and writes the session through a Storage. The three keys are
// written one by one; a partial write leaves no usable session since
// Hydrate treats any missing key as no session at all.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Login persists the session keys.
func (s *Store) Login(token, userID string, role user.Role) error {
	if err := s.storage.Set(tokenKey, token); err != nil {
		return errors.Wrap(err, "storing token")
	}
	if err := s.storage.Set(userIDKey, userID); err != nil {
		return errors.Wrap(err, "storing user id")
	}
	if err := s.storage.Set(roleKey, string(role)); err != nil {
		return errors.Wrap(err, "storing role")
	}
	return nil
}

// Logout clears the session keys.
func (s *Store) Logout() error {
	var firstErr error
	for _, key := range []string{tokenKey, userIDKey, roleKey} {
		if err := s.storage.Delete(key); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "deleting %s", key)
		}
	}
	return firstErr
}

// Hydrate loads the stored session. A missing key means no session;
// a present but unknown role means the stored data cannot be trusted.
func (s *Store) Hydrate() (Session, State) {
	token, err := s.storage.Get(tokenKey)
	if err != nil || token == "" {
		return Session{}, StateEmpty
	}
	userID, err := s.storage.Get(userIDKey)
	if err != nil || userID == "" {
		return Session{}, StateEmpty
	}
	role, err := s.storage.Get(roleKey)
	if err != nil || role == "" {
		return Session{}, StateEmpty
	}

	sess := Session{Token: token, UserID: userID, Role: user.Role(role)}
	if !sess.Role.Valid() {
		return sess, StateCorrupt
	}
	return sess, StateValid
}

// DirStorage stores each key as a file in a directory.
type DirStorage struct {
	dir string
}

func NewDirStorage(dir string) (*DirStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating session dir")
	}
	return &DirStorage{dir: dir}, nil
}

func (d *DirStorage) Get(key string) (string, error) {
	b, err := os.ReadFile(filepath.Join(d.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(b), nil
}

func (d *DirStorage) Set(key, value string) error {
	return os.WriteFile(filepath.Join(d.dir, key), []byte(value), 0o600)
}

func (d *DirStorage) Delete(key string) error {
	err := os.Remove(filepath.Join(d.dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MapStorage is an in-memory Storage for tests.
type MapStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMapStorage() *MapStorage {
	return &MapStorage{data: make(map[string]string)}
}

func (m *MapStorage) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MapStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MapStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
