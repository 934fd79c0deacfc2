// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// RENAME DIALOG
// =============================================================================

// RenameDialog edits a session's title. The target token is captured
// when the dialog opens so a completion applies to it regardless of
// later selection changes. A failed rename keeps the dialog open with
// the error shown.
type RenameDialog struct {
	Token string
	Input textinput.Model
	Error string

	theme *styles.Theme
}

// NewRenameDialog opens a rename dialog for the session.
func NewRenameDialog(sess chat.Session, theme *styles.Theme) *RenameDialog {
	input := textinput.New()
	input.Placeholder = "session name"
	input.CharLimit = 64
	input.SetValue(sess.Title())
	input.Focus()
	input.CursorEnd()

	return &RenameDialog{
		Token: sess.Token,
		Input: input,
		theme: theme,
	}
}

// Value returns the edited name.
func (d *RenameDialog) Value() string {
	return d.Input.Value()
}

// View renders the dialog box.
func (d *RenameDialog) View() string {
	lines := []string{
		d.theme.DialogTitle.Render("Rename session"),
		"",
		d.Input.View(),
	}
	if d.Error != "" {
		lines = append(lines, "", d.theme.FormError.Render(styles.StatusIndicators.Error+" "+d.Error))
	}
	lines = append(lines, "",
		d.theme.ShortcutKey.Render("enter")+" "+d.theme.ShortcutDesc.Render("save")+"  "+
			d.theme.ShortcutKey.Render("esc")+" "+d.theme.ShortcutDesc.Render("cancel"))

	return d.theme.DialogBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// =============================================================================
// DELETE DIALOG
// =============================================================================

// DeleteDialog confirms deleting a session. A failed delete keeps the
// dialog open with the error shown; the session stays in the list.
type DeleteDialog struct {
	Token   string
	Title   string
	Confirm bool // true = "Delete" focused
	Error   string

	theme *styles.Theme
}

// NewDeleteDialog opens a delete confirmation for the session.
func NewDeleteDialog(sess chat.Session, theme *styles.Theme) *DeleteDialog {
	return &DeleteDialog{
		Token: sess.Token,
		Title: sess.Title(),
		theme: theme,
	}
}

// Toggle flips the focused button.
func (d *DeleteDialog) Toggle() {
	d.Confirm = !d.Confirm
}

// View renders the dialog box.
func (d *DeleteDialog) View() string {
	question := "Delete " + util.TruncateWidth(d.Title, 32) + "?"

	cancelStyle := d.theme.DialogButtonActive
	deleteStyle := d.theme.DialogButton
	if d.Confirm {
		cancelStyle, deleteStyle = deleteStyle, cancelStyle
	}
	buttons := cancelStyle.Render("Cancel") + "  " + deleteStyle.Render("Delete")

	lines := []string{
		d.theme.DialogTitle.Render("Delete session"),
		"",
		d.theme.DialogText.Render(question),
		d.theme.DialogDanger.Render("Messages in this session will be lost."),
		"",
		buttons,
	}
	if d.Error != "" {
		lines = append(lines, "", d.theme.FormError.Render(styles.StatusIndicators.Error+" "+d.Error))
	}

	return d.theme.DialogBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
