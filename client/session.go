package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"reservation-api/models"
)

// Session is what a logged-in client remembers between runs.
type Session struct {
	UserID uint
	Role   models.UserRole
	Token  string
}

func (s Session) IsAdmin() bool { return s.Role == models.RoleAdmin }

// SessionCache stores the session as a flat JSON key-value file readable
// only by its owner. The keys are userId, role and token.
type SessionCache struct {
	path string
}

func NewSessionCache(path string) *SessionCache {
	return &SessionCache{path: path}
}

// DefaultSessionPath is reservectl/session.json under the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reservectl", "session.json"), nil
}

func (c *SessionCache) Path() string { return c.path }

func (c *SessionCache) Save(s Session) error {
	kv := map[string]string{
		"userId": strconv.FormatUint(uint64(s.UserID), 10),
		"role":   string(s.Role),
		"token":  s.Token,
	}
	b, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, c.path)
}

// Load returns the stored session; ok is false when nobody is logged in.
func (c *SessionCache) Load() (s Session, ok bool, err error) {
	b, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("read session: %w", err)
	}
	var kv map[string]string
	if err := json.Unmarshal(b, &kv); err != nil {
		return Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	if kv["token"] == "" {
		return Session{}, false, nil
	}
	id, err := strconv.ParseUint(kv["userId"], 10, 64)
	if err != nil {
		return Session{}, false, fmt.Errorf("decode session userId: %w", err)
	}
	return Session{UserID: uint(id), Role: models.UserRole(kv["role"]), Token: kv["token"]}, true, nil
}

// Clear forgets the session. Clearing an empty cache is not an error.
func (c *SessionCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
