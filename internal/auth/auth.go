// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/storage"
)

// ErrNotAuthenticated indicates an operation that needs a logged-in
// user was called while anonymous.
var ErrNotAuthenticated = errors.New("not authenticated")

// Manager is the anonymous/authenticated state machine. It owns the
// in-memory user identity and keeps the durable storage scope in sync
// with it: a successful login or signup writes both, logout clears
// both (and the volatile session pointer with them).
type Manager struct {
	client *api.Client
	store  *storage.Store

	mu   sync.Mutex
	user *storage.User
}

// NewManager creates a manager seeded from the durable scope, so a
// restart resumes the previous login without touching the network.
func NewManager(client *api.Client, store *storage.Store) *Manager {
	return &Manager{
		client: client,
		store:  store,
		user:   store.User(),
	}
}

// User returns a copy of the current user, or nil when anonymous.
func (m *Manager) User() *storage.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// Login validates credentials against the backend and, on success,
// installs the returned identity in memory and in the durable scope.
// Bad credentials come back as a status-401 *api.APIError.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	u, err := m.client.ValidateUser(ctx, email, password)
	if err != nil {
		return err
	}
	return m.install(storage.User{ID: u.ID, Email: u.Email, Name: u.Name})
}

// Signup registers a new account and logs it in.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	u, err := m.client.CreateUser(ctx, email, password, name)
	if err != nil {
		return err
	}
	return m.install(storage.User{ID: u.ID, Email: u.Email, Name: u.Name})
}

// Logout clears the in-memory identity, the durable scope, and the
// volatile session pointer. Purely local; the backend holds no
// session state for the client to tear down.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	return m.store.ClearUser()
}

// UpdateUser merges non-empty fields into the current identity, in
// memory and in the durable scope. Local only.
func (m *Manager) UpdateUser(name, email string) (*storage.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, ErrNotAuthenticated
	}

	updated := *m.user
	if name != "" {
		updated.Name = name
	}
	if email != "" {
		updated.Email = email
	}
	if err := m.store.SetUser(updated); err != nil {
		return nil, err
	}
	m.user = &updated
	u := updated
	return &u, nil
}

// UpdatePassword changes the account password on the backend. The
// local identity is unaffected; passwords are never stored.
func (m *Manager) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	m.mu.Lock()
	user := m.user
	m.mu.Unlock()
	if user == nil {
		return ErrNotAuthenticated
	}
	return m.client.UpdatePassword(ctx, user.ID, oldPassword, newPassword)
}

func (m *Manager) install(u storage.User) error {
	if err := m.store.SetUser(u); err != nil {
		return err
	}
	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()
	return nil
}
