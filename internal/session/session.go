package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// Store keeps the authenticated identity: the opaque API token, the user
// it belongs to, and the login timestamp. The three fields are written
// together on login and cleared together on logout, never individually.
// The state is persisted to a JSON file so a restarted console resumes
// the same session.
type Store struct {
	mu    sync.RWMutex
	path  string
	state state
}

type state struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	LoginTime time.Time   `json:"loginTime"`
}

// Open loads any persisted session from path. A missing or unreadable
// file yields a logged-out store rather than an error; the console then
// simply requires a fresh login.
func Open(path string) *Store {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return s
	}
	s.state = st
	return s
}

// Begin records a successful login and persists it.
func (s *Store) Begin(token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{
		Token:     token,
		User:      user,
		LoginTime: time.Now(),
	}
	return s.persist()
}

// Clear drops the token, user and login time together and removes the
// session file. Used on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// LoggedIn reports whether a token is held.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// User returns the stored user, zero-valued when logged out.
func (s *Store) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User
}

// LoginTime returns when the current session began.
func (s *Store) LoginTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LoginTime
}

// DisplayName returns the username with its first letter upper-cased,
// or "User" when nobody is logged in. Used for the greeting line.
func (s *Store) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := s.state.User.Username
	if name == "" {
		return "User"
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
