// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// StatusBar renders the bottom bar: user and session info on the
// left, shortcuts on the right, and a dismissible error line when an
// operation failed non-blockingly.
type StatusBar struct {
	User    string
	Session string
	Error   string
	Width   int

	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth sets the bar width.
func (sb *StatusBar) SetWidth(width int) {
	sb.Width = width
}

// SetError sets the error line. An empty string clears it.
func (sb *StatusBar) SetError(msg string) {
	sb.Error = msg
}

// View renders the bar (two lines when an error is present).
func (sb *StatusBar) View() string {
	var left []string
	if sb.User != "" {
		left = append(left, sb.User)
	}
	if sb.Session != "" {
		left = append(left, sb.Session)
	}
	leftText := strings.Join(left, " | ")

	shortcuts := []struct{ key, desc string }{
		{"ctrl+n", "new"},
		{"ctrl+r", "rename"},
		{"ctrl+d", "delete"},
		{"tab", "pane"},
		{"ctrl+c", "quit"},
	}
	var parts []string
	for _, s := range shortcuts {
		parts = append(parts, sb.theme.ShortcutKey.Render(s.key)+" "+sb.theme.ShortcutDesc.Render(s.desc))
	}
	rightText := strings.Join(parts, "  ")

	gap := sb.Width - util.StringWidth(leftText) - util.StringWidth(stripForWidth(rightText)) - 2
	if gap < 1 {
		gap = 1
	}

	bar := sb.theme.StatusBar.Width(sb.Width).Render(leftText + strings.Repeat(" ", gap) + rightText)

	if sb.Error == "" {
		return bar
	}
	errLine := sb.theme.StatusError.Render(
		styles.StatusIndicators.Error + " " + util.TruncateWidth(sb.Error, sb.Width-6) + " (esc to dismiss)")
	return bar + "\n" + errLine
}

// stripForWidth drops ANSI escape sequences so styled text measures
// by its visible cells.
func stripForWidth(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
