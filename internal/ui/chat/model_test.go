// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/auth"
	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/storage"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// newTestModel builds a chat screen over a stub backend with no
// sessions and an authenticated local user.
func newTestModel(t *testing.T) Model {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/{userID}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"sessions": []any{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	st, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SetUser(storage.User{ID: 7, Email: "kai@example.com", Name: "Kai"}); err != nil {
		t.Fatal(err)
	}

	client := api.NewClient(srv.URL, st)
	store := chat.NewStore(client, st)
	manager := auth.NewManager(client, st)

	return New(store, manager, styles.NewTheme())
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestFocusToggle(t *testing.T) {
	m := newTestModel(t)
	if m.focus != focusInput {
		t.Fatal("input should start focused")
	}
	m, _ = m.Update(key(tea.KeyTab))
	if m.focus != focusSessions {
		t.Error("tab did not move focus to the session pane")
	}
	m, _ = m.Update(key(tea.KeyTab))
	if m.focus != focusInput {
		t.Error("tab did not move focus back")
	}
}

func TestSendEmptyInputIgnored(t *testing.T) {
	m := newTestModel(t)
	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Error("empty input should not dispatch a send")
	}
	if m.waiting {
		t.Error("empty input should not start a send")
	}
}

func TestSendWithoutActiveSession(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello")

	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Error("send without a session should not dispatch")
	}
	if m.statusBar.Error == "" {
		t.Error("expected a status-line error")
	}
	if m.waiting {
		t.Error("send should not be in flight")
	}
}

func TestFirstSendChainsTitleGeneration(t *testing.T) {
	m := newTestModel(t)
	m.waiting = true

	m, cmd := m.Update(sendCompleteMsg{token: "tok-1", text: "hello", first: true})
	if m.waiting {
		t.Error("completion should clear the in-flight flag")
	}
	if cmd == nil {
		t.Error("first message should chain title generation")
	}

	m.waiting = true
	_, cmd = m.Update(sendCompleteMsg{token: "tok-1", text: "again", first: false})
	if cmd != nil {
		t.Error("later messages should not regenerate the title")
	}
}

func TestFailedSendKeepsOptimisticMessage(t *testing.T) {
	m := newTestModel(t)
	m.waiting = true

	m, _ = m.Update(sendCompleteMsg{token: "tok-1", text: "hello", err: errors.New("boom")})
	if m.waiting {
		t.Error("failure should clear the in-flight flag")
	}
	if m.statusBar.Error == "" {
		t.Error("failure should surface on the status line")
	}
}

func TestRenameDialogLifecycle(t *testing.T) {
	m := newTestModel(t)
	m.sessionList.SetSessions([]chat.Session{{Token: "tok-1", ShortName: "Ideas"}})

	m, _ = m.Update(key(tea.KeyCtrlR))
	if m.renameDialog == nil {
		t.Fatal("ctrl+r should open the rename dialog")
	}
	if m.renameDialog.Token != "tok-1" {
		t.Errorf("dialog captured token %q", m.renameDialog.Token)
	}

	// A failed rename keeps the dialog open with the error shown.
	m, _ = m.Update(sessionRenamedMsg{token: "tok-1", err: errors.New("boom")})
	if m.renameDialog == nil {
		t.Fatal("failed rename should keep the dialog open")
	}
	if m.renameDialog.Error == "" {
		t.Error("dialog should show the failure")
	}

	m, _ = m.Update(sessionRenamedMsg{token: "tok-1", name: "Plans"})
	if m.renameDialog != nil {
		t.Error("successful rename should close the dialog")
	}
}

func TestRenameRejectsEmptyName(t *testing.T) {
	m := newTestModel(t)
	m.sessionList.SetSessions([]chat.Session{{Token: "tok-1"}})

	m, _ = m.Update(key(tea.KeyCtrlR))
	m.renameDialog.Input.SetValue("   ")
	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Error("blank name should not dispatch a rename")
	}
	if m.renameDialog.Error == "" {
		t.Error("blank name should show a dialog error")
	}
}

func TestDeleteDialogLifecycle(t *testing.T) {
	m := newTestModel(t)
	m.sessionList.SetSessions([]chat.Session{{Token: "tok-1", ShortName: "Ideas"}})

	m, _ = m.Update(key(tea.KeyCtrlD))
	if m.deleteDialog == nil {
		t.Fatal("ctrl+d should open the delete dialog")
	}

	// Enter with Cancel focused dismisses without dispatching.
	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Error("cancel should not dispatch a delete")
	}
	if m.deleteDialog != nil {
		t.Error("cancel should close the dialog")
	}

	m, _ = m.Update(key(tea.KeyCtrlD))
	m.deleteDialog.Toggle()
	_, cmd = m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Error("confirmed delete should dispatch")
	}
}

func TestFailedDeleteKeepsDialogOpen(t *testing.T) {
	m := newTestModel(t)
	m.sessionList.SetSessions([]chat.Session{{Token: "tok-1"}})

	m, _ = m.Update(key(tea.KeyCtrlD))
	m, _ = m.Update(sessionDeletedMsg{token: "tok-1", err: errors.New("boom")})
	if m.deleteDialog == nil {
		t.Fatal("failed delete should keep the dialog open")
	}
	if m.deleteDialog.Error == "" {
		t.Error("dialog should show the failure")
	}
}

func TestEscDismissesStatusError(t *testing.T) {
	m := newTestModel(t)
	m.statusBar.SetError("something broke")

	m, _ = m.Update(key(tea.KeyEsc))
	if m.statusBar.Error != "" {
		t.Error("esc should clear the status error")
	}
}
