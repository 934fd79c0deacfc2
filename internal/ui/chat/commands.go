// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/chat"
)

// =============================================================================
// ASYNC MESSAGES
// =============================================================================

// sessionsLoadedMsg reports the initial session-list load.
type sessionsLoadedMsg struct {
	err error
}

// sessionCreatedMsg reports a new-session request.
type sessionCreatedMsg struct {
	session chat.Session
	err     error
}

// sessionSelectedMsg reports a selection change (messages loaded).
type sessionSelectedMsg struct {
	token string
	err   error
}

// sendCompleteMsg reports the network half of a message send. The
// token is the one captured at dispatch; first carries the
// title-generation gate decided at the optimistic append.
type sendCompleteMsg struct {
	token string
	text  string
	first bool
	err   error
}

// titleGeneratedMsg reports a title-generation completion.
type titleGeneratedMsg struct {
	token string
	name  string
	err   error
}

// sessionDeletedMsg reports a delete attempt.
type sessionDeletedMsg struct {
	token string
	err   error
}

// sessionRenamedMsg reports a rename attempt.
type sessionRenamedMsg struct {
	token string
	name  string
	err   error
}

// =============================================================================
// COMMANDS
// =============================================================================
//
// Each command captures the identifiers it needs at dispatch time.
// None of them read the model's "current" selection when they
// complete.

func loadSessionsCmd(store *chat.Store) tea.Cmd {
	return func() tea.Msg {
		return sessionsLoadedMsg{err: store.Load(context.Background())}
	}
}

func newSessionCmd(store *chat.Store) tea.Cmd {
	return func() tea.Msg {
		sess, err := store.NewSession(context.Background())
		return sessionCreatedMsg{session: sess, err: err}
	}
}

func selectSessionCmd(store *chat.Store, token string) tea.Cmd {
	return func() tea.Msg {
		return sessionSelectedMsg{token: token, err: store.SetActive(context.Background(), token)}
	}
}

func completeSendCmd(store *chat.Store, token, text string, first bool) tea.Cmd {
	return func() tea.Msg {
		_, err := store.CompleteSend(context.Background(), token, text)
		return sendCompleteMsg{token: token, text: text, first: first, err: err}
	}
}

func generateTitleCmd(store *chat.Store, token, topic string) tea.Cmd {
	return func() tea.Msg {
		name, err := store.GenerateTitle(context.Background(), token, topic)
		return titleGeneratedMsg{token: token, name: name, err: err}
	}
}

func deleteSessionCmd(store *chat.Store, token string) tea.Cmd {
	return func() tea.Msg {
		return sessionDeletedMsg{token: token, err: store.Delete(context.Background(), token)}
	}
}

func renameSessionCmd(store *chat.Store, token, name string) tea.Cmd {
	return func() tea.Msg {
		return sessionRenamedMsg{token: token, name: name, err: store.Rename(context.Background(), token, name)}
	}
}
