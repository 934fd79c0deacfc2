// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/ui/components"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.statusBar.SetError("could not load sessions: " + msg.err.Error())
		}
		m.refresh()
		return m, nil

	case sessionCreatedMsg:
		if msg.err != nil {
			m.statusBar.SetError("could not create session: " + msg.err.Error())
			return m, nil
		}
		m.sessionList.Cursor = 0
		m.focus = focusInput
		m.input.Focus()
		m.refresh()
		return m, nil

	case sessionSelectedMsg:
		if msg.err != nil {
			m.statusBar.SetError("could not load messages: " + msg.err.Error())
		}
		m.refresh()
		return m, nil

	case sendCompleteMsg:
		m.waiting = false
		if msg.err != nil {
			// The optimistic human message stays; only the reply is
			// missing.
			m.statusBar.SetError("message failed: " + msg.err.Error())
			m.refresh()
			return m, nil
		}
		m.refresh()
		m.viewport.GotoBottom()
		if msg.first {
			return m, generateTitleCmd(m.store, msg.token, msg.text)
		}
		return m, nil

	case titleGeneratedMsg:
		if msg.err != nil {
			// Placeholder title stands until the user renames.
			m.statusBar.SetError("could not name session: " + msg.err.Error())
			return m, nil
		}
		m.refresh()
		return m, nil

	case sessionDeletedMsg:
		if msg.err != nil {
			if m.deleteDialog != nil && m.deleteDialog.Token == msg.token {
				m.deleteDialog.Error = msg.err.Error()
			}
			return m, nil
		}
		m.deleteDialog = nil
		m.refresh()
		return m, nil

	case sessionRenamedMsg:
		if msg.err != nil {
			if m.renameDialog != nil && m.renameDialog.Token == msg.token {
				m.renameDialog.Error = msg.err.Error()
			}
			return m, nil
		}
		m.renameDialog = nil
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.renameDialog != nil {
		return m.handleRenameKey(msg)
	}
	if m.deleteDialog != nil {
		return m.handleDeleteKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.toggleFocus()
		return m, nil

	case "esc":
		m.statusBar.SetError("")
		return m, nil

	case "ctrl+n":
		return m, newSessionCmd(m.store)

	case "ctrl+r":
		if sess, ok := m.sessionList.Selected(); ok {
			m.renameDialog = components.NewRenameDialog(sess, m.theme)
		}
		return m, nil

	case "ctrl+d":
		if sess, ok := m.sessionList.Selected(); ok {
			m.deleteDialog = components.NewDeleteDialog(sess, m.theme)
		}
		return m, nil
	}

	if m.focus == focusSessions {
		switch msg.String() {
		case "up", "k":
			m.sessionList.MoveUp()
			return m, nil
		case "down", "j":
			m.sessionList.MoveDown()
			return m, nil
		case "enter":
			if sess, ok := m.sessionList.Selected(); ok {
				return m, selectSessionCmd(m.store, sess.Token)
			}
			return m, nil
		}
		return m.updateFocused(msg)
	}

	if msg.String() == "enter" {
		return m.send()
	}
	return m.updateFocused(msg)
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.renameDialog = nil
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.renameDialog.Value())
		if name == "" {
			m.renameDialog.Error = "name cannot be empty"
			return m, nil
		}
		return m, renameSessionCmd(m.store, m.renameDialog.Token, name)
	}

	var cmd tea.Cmd
	m.renameDialog.Input, cmd = m.renameDialog.Input.Update(msg)
	return m, cmd
}

func (m Model) handleDeleteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.deleteDialog = nil
		return m, nil
	case "left", "right", "tab":
		m.deleteDialog.Toggle()
		return m, nil
	case "enter":
		if m.deleteDialog.Confirm {
			return m, deleteSessionCmd(m.store, m.deleteDialog.Token)
		}
		m.deleteDialog = nil
		return m, nil
	}
	return m, nil
}

// =============================================================================
// SEND FLOW
// =============================================================================

// send performs the optimistic half of a message send synchronously,
// then dispatches the network half with the token and gate captured
// here.
func (m Model) send() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting {
		return m, nil
	}

	token, first, err := m.store.BeginSend(text)
	if errors.Is(err, chat.ErrNoActiveSession) {
		m.statusBar.SetError("no active session - ctrl+n to start one")
		return m, nil
	}
	if err != nil {
		m.statusBar.SetError(err.Error())
		return m, nil
	}

	m.input.Reset()
	m.waiting = true
	m.statusBar.SetError("")
	m.refresh()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		completeSendCmd(m.store, token, text, first),
		m.spin.Tick,
	)
}

// =============================================================================
// FOCUS
// =============================================================================

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusSessions
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
}

// updateFocused routes non-key messages (and unhandled keys) to the
// focused widget.
func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}
