// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreWithDir failed: %v", err)
	}
	return s
}

func TestUserRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if s.User() != nil {
		t.Fatal("fresh store should have no user")
	}
	if s.IsAuthenticated() {
		t.Fatal("fresh store should not be authenticated")
	}
	if s.UserID() != 0 {
		t.Fatal("fresh store UserID should be 0")
	}

	u := User{ID: 7, Email: "ada@example.com", Name: "Ada"}
	if err := s.SetUser(u); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	got := s.User()
	if got == nil {
		t.Fatal("User() returned nil after SetUser")
	}
	if *got != u {
		t.Errorf("User() = %+v, want %+v", *got, u)
	}
	if !s.IsAuthenticated() || s.UserID() != 7 {
		t.Error("authentication state inconsistent after SetUser")
	}
}

func TestUserSurvivesNewStore(t *testing.T) {
	dir := t.TempDir()

	s1, _ := NewStoreWithDir(dir)
	if err := s1.SetUser(User{ID: 3, Email: "x@y.z", Name: "X"}); err != nil {
		t.Fatal(err)
	}

	// A new store over the same directory sees the durable scope.
	s2, _ := NewStoreWithDir(dir)
	if s2.UserID() != 3 {
		t.Errorf("durable scope did not survive: UserID = %d", s2.UserID())
	}
	// The volatile scope does not carry over.
	if s2.SessionToken() != "" {
		t.Error("volatile scope should not survive a new store")
	}
}

func TestCorruptUserFileTreatedAsAbsent(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.BaseDir, "user.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if s.User() != nil {
		t.Error("corrupt identity file should read as no user")
	}
}

func TestSessionToken(t *testing.T) {
	s := newTestStore(t)

	if s.SessionToken() != "" {
		t.Fatal("fresh store should have no session token")
	}

	s.SetSessionToken("tok1")
	if s.SessionToken() != "tok1" {
		t.Errorf("SessionToken = %q", s.SessionToken())
	}

	s.ClearSessionToken()
	if s.SessionToken() != "" {
		t.Error("ClearSessionToken did not clear")
	}
}

func TestClearUserClearsBothScopes(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetUser(User{ID: 1, Email: "a@b.c", Name: "A"}); err != nil {
		t.Fatal(err)
	}
	s.SetSessionToken("tok1")

	if err := s.ClearUser(); err != nil {
		t.Fatalf("ClearUser failed: %v", err)
	}

	if s.User() != nil {
		t.Error("user survived ClearUser")
	}
	if s.SessionToken() != "" {
		t.Error("session token survived ClearUser")
	}

	// Clearing an already-clear store is not an error.
	if err := s.ClearUser(); err != nil {
		t.Errorf("second ClearUser errored: %v", err)
	}
}
