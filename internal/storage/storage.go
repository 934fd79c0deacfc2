// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// STORED USER TYPE
// =============================================================================

// User is the identity persisted to the durable scope after login/signup.
// Only non-secret fields are stored; passwords never touch disk.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the durable and volatile key-value scopes.
//
// The durable scope survives restarts (user.json on disk). The volatile
// scope lives for the process only - the terminal analogue of a browser
// tab's sessionStorage - and holds the last-active session token.
type Store struct {
	// BaseDir is the directory holding the durable scope.
	// Default: ~/.parley/
	BaseDir string

	mu           sync.Mutex
	sessionToken string
}

// NewStore creates a store rooted at the parley config directory.
func NewStore() (*Store, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStoreWithDir(dir)
}

// NewStoreWithDir creates a store rooted at a custom directory.
func NewStoreWithDir(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{BaseDir: baseDir}, nil
}

// =============================================================================
// DURABLE SCOPE - USER IDENTITY
// =============================================================================

// User returns the persisted user, or nil when none is stored.
// A corrupt identity file is treated as absent.
func (s *Store) User() *User {
	data, err := os.ReadFile(s.userPath())
	if err != nil {
		return nil
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	if u.ID == 0 {
		return nil
	}
	return &u
}

// SetUser persists the user identity to the durable scope.
func (s *Store) SetUser(u User) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	// Identity file is owner-only, matching config file permissions.
	return util.AtomicWriteFile(s.userPath(), data, 0600)
}

// ClearUser removes the persisted identity and, with it, the volatile
// session pointer. The two must never survive each other.
func (s *Store) ClearUser() error {
	s.ClearSessionToken()

	err := os.Remove(s.userPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UserID returns the persisted user's id, or 0 when no user is stored.
func (s *Store) UserID() int {
	if u := s.User(); u != nil {
		return u.ID
	}
	return 0
}

// IsAuthenticated reports whether a user identity is persisted.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// =============================================================================
// VOLATILE SCOPE - ACTIVE SESSION TOKEN
// =============================================================================

// SessionToken returns the stored active-session token, or "".
func (s *Store) SessionToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionToken
}

// SetSessionToken stores the active-session token.
func (s *Store) SetSessionToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionToken = token
}

// ClearSessionToken removes the stored active-session token.
func (s *Store) ClearSessionToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionToken = ""
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store) userPath() string {
	return filepath.Join(s.BaseDir, "user.json")
}
