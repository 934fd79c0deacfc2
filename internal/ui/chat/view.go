// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.theme.ThinkingText.Render("starting...")
	}

	header := m.theme.HeaderTitle.Render("parley")
	if m.loading {
		header += "  " + m.spin.View() + m.theme.ThinkingText.Render(" loading sessions...")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sessionList.View(),
		m.theme.Container.Render(m.viewport.View()),
	)

	inputLine := m.theme.InputPrompt.Render("> ") + m.input.View()
	if m.waiting {
		inputLine = m.spin.View() + m.theme.ThinkingText.Render(" thinking...")
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.theme.InputContainer.Width(m.width-2).Render(inputLine),
		m.statusBar.View(),
	)

	if dialog := m.dialogView(); dialog != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
	}
	return screen
}

// dialogView returns the open dialog's rendering, or "" when none is
// open.
func (m Model) dialogView() string {
	switch {
	case m.renameDialog != nil:
		return m.renameDialog.View()
	case m.deleteDialog != nil:
		return m.deleteDialog.View()
	}
	return ""
}
