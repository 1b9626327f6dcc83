// Package auth is the authentication boundary: a durable local credential
// record plus a subscription delivering (user | nil) transitions. The
// persistence gateway treats any transition into the signed-in state as a
// reconciliation trigger.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultCredentialsPath is where the signed-in identity is recorded.
const DefaultCredentialsPath = "~/.gauntlet/credentials.json"

// User is a signed-in identity.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	SignedIn time.Time `json:"signedIn"`
}

// Listener receives auth-state transitions. nil means signed out.
type Listener func(u *User)

// Service owns the credential record and fans out state changes to
// subscribers.
type Service struct {
	path string

	mu        sync.Mutex
	current   *User
	listeners []Listener
}

// NewService creates a service backed by the credential file at path.
// An empty path uses DefaultCredentialsPath.
func NewService(path string) (*Service, error) {
	if path == "" {
		path = DefaultCredentialsPath
	}
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	s := &Service{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("auth: cannot read credentials: %w", err)
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		// A corrupt record means signed out, not a broken app.
		return nil
	}
	if u.ID != "" {
		s.current = &u
	}
	return nil
}

// Current returns the signed-in user, or nil when anonymous.
func (s *Service) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers a listener for future auth transitions. Listeners
// are invoked synchronously from SignIn and SignOut.
func (s *Service) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SignIn records the given identity durably and notifies subscribers.
func (s *Service) SignIn(name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("auth: empty user name")
	}

	u := &User{
		ID:       strings.ToLower(name),
		Name:     name,
		SignedIn: time.Now(),
	}
	if err := s.write(u); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = u
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(u)
	}
	return u, nil
}

// SignOut removes the credential record and notifies subscribers.
func (s *Service) SignOut() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("auth: cannot remove credentials: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
	return nil
}

func (s *Service) write(u *User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("auth: cannot create directory: %w", err)
	}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: cannot encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("auth: cannot write credentials: %w", err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("auth: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
