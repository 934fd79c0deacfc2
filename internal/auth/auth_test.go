// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/storage"
)

func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *storage.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewManager(api.NewClient(srv.URL, store), store), store
}

func validateHandler(valid bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if valid {
			json.NewEncoder(w).Encode(map[string]any{
				"is_valid": true, "message": "ok",
				"id": 7, "name": "Ada", "email": "ada@example.com",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"is_valid": false, "message": "invalid credentials",
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	m, store := newTestManager(t, validateHandler(true))

	if m.IsAuthenticated() {
		t.Fatal("fresh manager should be anonymous")
	}

	if err := m.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	u := m.User()
	if u == nil || u.ID != 7 || u.Name != "Ada" {
		t.Errorf("user = %+v", u)
	}
	// The durable scope was written too.
	if store.UserID() != 7 {
		t.Errorf("stored user id = %d", store.UserID())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	m, store := newTestManager(t, validateHandler(false))

	err := m.Login(context.Background(), "ada@example.com", "wrong")
	if !api.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("error = %v, want status-401 APIError", err)
	}

	// Nothing was persisted and the manager stays anonymous.
	if m.IsAuthenticated() {
		t.Error("manager authenticated after rejected login")
	}
	if store.User() != nil {
		t.Error("durable scope written after rejected login")
	}
}

func TestSignup(t *testing.T) {
	m, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message": "created", "id": 9, "name": "Bea", "email": "bea@example.com",
		})
	})

	if err := m.Signup(context.Background(), "Bea", "bea@example.com", "pw"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if !m.IsAuthenticated() || store.UserID() != 9 {
		t.Error("signup did not install the new identity")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	m, store := newTestManager(t, validateHandler(true))

	if err := m.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	store.SetSessionToken("tok-a")

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if m.IsAuthenticated() {
		t.Error("manager authenticated after logout")
	}
	if store.User() != nil {
		t.Error("durable scope survived logout")
	}
	if store.SessionToken() != "" {
		t.Error("volatile session pointer survived logout")
	}
}

func TestSeededFromStorage(t *testing.T) {
	dir := t.TempDir()
	store, _ := storage.NewStoreWithDir(dir)
	if err := store.SetUser(storage.User{ID: 5, Email: "c@d.e", Name: "C"}); err != nil {
		t.Fatal(err)
	}

	m := NewManager(api.NewClient("http://localhost:0", store), store)
	if !m.IsAuthenticated() || m.User().ID != 5 {
		t.Error("manager not seeded from durable scope")
	}
}

func TestUpdateUser(t *testing.T) {
	m, store := newTestManager(t, validateHandler(true))
	if err := m.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	u, err := m.UpdateUser("Ada L.", "")
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if u.Name != "Ada L." || u.Email != "ada@example.com" {
		t.Errorf("merged user = %+v", u)
	}
	if store.User().Name != "Ada L." {
		t.Error("merge not persisted")
	}
}

func TestUpdateUserAnonymous(t *testing.T) {
	m, _ := newTestManager(t, validateHandler(true))
	if _, err := m.UpdateUser("X", ""); err != ErrNotAuthenticated {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	var gotPath string
	m, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users/validate":
			validateHandler(true)(w, r)
		default:
			gotPath = r.URL.Path
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["old_password"] != "old" || req["new_password"] != "new" {
				t.Errorf("body = %v", req)
			}
			w.Write([]byte(`{"message": "updated"}`))
		}
	})

	if err := m.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	if err := m.UpdatePassword(context.Background(), "old", "new"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if gotPath != "/users/7/password" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestUpdatePasswordAnonymous(t *testing.T) {
	m, _ := newTestManager(t, validateHandler(true))
	if err := m.UpdatePassword(context.Background(), "a", "b"); err != ErrNotAuthenticated {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
}
