package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/animerec/anirec/internal/config"
	"github.com/animerec/anirec/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = "session.yaml"

// Session is the locally persisted identity of the logged-in user.
// The token is opaque and never validated locally; the backend accepts or
// rejects it on each call.
type Session struct {
	UserID      int    `yaml:"user_id"`
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	AccessToken string `yaml:"access_token"`
}

// User returns the session identity as a domain user.
func (s *Session) User() domain.User {
	return domain.User{
		ID:    s.UserID,
		Name:  s.Name,
		Email: s.Email,
	}
}

// Store is the single typed accessor for the persisted session.  Every view
// goes through it rather than reading the file ad hoc.
type Store struct {
	path string
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session file location, next to the config file.
func DefaultPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", fmt.Errorf("unable to determine session file path: %w", err)
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the persisted session.  A missing file is not an error; it
// returns (nil, nil) and the caller routes to the login flow.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read session file: %w", err)
	}

	sess := &Session{}
	if err := yaml.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("unable to parse session file: %w", err)
	}

	if sess.UserID == 0 || sess.AccessToken == "" {
		// A half-written session is as good as no session
		return nil, nil
	}

	return sess, nil
}

// Save persists the session, creating the directory if needed.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(sess)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the persisted session.  Clearing an already-absent session is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
