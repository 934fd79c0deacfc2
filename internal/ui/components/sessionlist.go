// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// SessionList renders the session pane: one row per session, newest
// first, with the cursor row highlighted and the active session
// marked.
type SessionList struct {
	Sessions []chat.Session
	Cursor   int
	Active   string
	Width    int
	Height   int
	Compact  bool

	theme *styles.Theme
}

// NewSessionList creates an empty session pane.
func NewSessionList(theme *styles.Theme) *SessionList {
	return &SessionList{
		Width:  28,
		Height: 20,
		theme:  theme,
	}
}

// SetSessions replaces the rendered sessions and clamps the cursor.
func (sl *SessionList) SetSessions(sessions []chat.Session) {
	sl.Sessions = sessions
	if sl.Cursor >= len(sessions) {
		sl.Cursor = len(sessions) - 1
	}
	if sl.Cursor < 0 {
		sl.Cursor = 0
	}
}

// SetSize sets the pane dimensions.
func (sl *SessionList) SetSize(width, height int) {
	sl.Width = width
	sl.Height = height
}

// MoveUp moves the cursor up one row.
func (sl *SessionList) MoveUp() {
	if sl.Cursor > 0 {
		sl.Cursor--
	}
}

// MoveDown moves the cursor down one row.
func (sl *SessionList) MoveDown() {
	if sl.Cursor < len(sl.Sessions)-1 {
		sl.Cursor++
	}
}

// Selected returns the session under the cursor.
func (sl *SessionList) Selected() (chat.Session, bool) {
	if sl.Cursor < 0 || sl.Cursor >= len(sl.Sessions) {
		return chat.Session{}, false
	}
	return sl.Sessions[sl.Cursor], true
}

// View renders the pane.
func (sl *SessionList) View() string {
	innerWidth := sl.Width - 4
	if innerWidth < 8 {
		innerWidth = 8
	}

	title := sl.theme.HeaderTitle.Render("Sessions")

	var rows []string
	rows = append(rows, title, "")

	if len(sl.Sessions) == 0 {
		rows = append(rows, sl.theme.SessionMeta.Render("no sessions"))
	}

	for i, sess := range sl.Sessions {
		marker := "  "
		if sess.Token == sl.Active {
			marker = "* "
		}
		label := util.TruncateWidth(marker+sess.Title(), innerWidth)
		label = util.PadRight(label, innerWidth)

		style := sl.theme.SessionItem
		if i == sl.Cursor {
			style = sl.theme.SessionItemSelected
		}
		rows = append(rows, style.Render(label))

		if !sl.Compact && sess.Timestamp != "" {
			meta := util.TruncateWidth("  "+sess.Timestamp, innerWidth)
			rows = append(rows, sl.theme.SessionMeta.Render(meta))
		}
	}

	body := strings.Join(rows, "\n")
	return sl.theme.SessionList.
		Width(sl.Width).
		Height(sl.Height).
		Render(body)
}
