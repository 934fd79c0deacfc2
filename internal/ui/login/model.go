// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/auth"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// Field indexes into the input slice.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// AuthenticatedMsg is emitted when login or signup succeeds. The
// parent model switches to the chat screen on receipt.
type AuthenticatedMsg struct{}

// resultMsg carries the outcome of an auth attempt back to Update.
type resultMsg struct {
	err error
}

// Model is the login/signup form.
type Model struct {
	manager *auth.Manager
	theme   *styles.Theme

	mode    Mode
	inputs  []textinput.Model
	focus   int
	errText string
	busy    bool

	width  int
	height int
}

// New creates the form in login mode.
func New(manager *auth.Manager, theme *styles.Theme) Model {
	inputs := make([]textinput.Model, fieldCount)

	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = 64
	inputs[fieldName] = name

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()
	inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	inputs[fieldPassword] = password

	return Model{
		manager: manager,
		theme:   theme,
		mode:    ModeLogin,
		inputs:  inputs,
		focus:   fieldEmail,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = friendlyAuthError(msg.err)
			return m, nil
		}
		return m, func() tea.Msg { return AuthenticatedMsg{} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.nextField(1))
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.nextField(-1))
			return m, nil
		case "ctrl+s":
			m.toggleMode()
			return m, nil
		case "enter":
			if m.focus == fieldPassword {
				return m.submit()
			}
			m.setFocus(m.nextField(1))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	title := "parley - log in"
	hint := "ctrl+s to switch to sign up"
	if m.mode == ModeSignup {
		title = "parley - sign up"
		hint = "ctrl+s to switch to log in"
	}

	var rows []string
	rows = append(rows, m.theme.HeaderTitle.Render(title), "")

	if m.mode == ModeSignup {
		rows = append(rows, m.fieldView("name", fieldName))
	}
	rows = append(rows,
		m.fieldView("email", fieldEmail),
		m.fieldView("password", fieldPassword),
	)

	if m.busy {
		rows = append(rows, "", m.theme.ThinkingText.Render("authenticating..."))
	}
	if m.errText != "" {
		rows = append(rows, "", m.theme.FormError.Render(styles.StatusIndicators.Error+" "+m.errText))
	}
	rows = append(rows, "", m.theme.FormHint.Render(hint+"  |  enter to submit  |  ctrl+c to quit"))

	box := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// INTERNALS
// =============================================================================

func (m Model) fieldView(label string, idx int) string {
	style := m.theme.FormLabel
	if m.focus == idx {
		style = m.theme.FormLabelFocus
	}
	return style.Render(label) + "\n" + m.inputs[idx].View()
}

func (m *Model) toggleMode() {
	if m.mode == ModeLogin {
		m.mode = ModeSignup
		m.setFocus(fieldName)
	} else {
		m.mode = ModeLogin
		m.setFocus(fieldEmail)
	}
	m.errText = ""
}

// nextField returns the next focusable field, skipping the name field
// in login mode.
func (m Model) nextField(dir int) int {
	idx := m.focus
	for {
		idx = (idx + dir + fieldCount) % fieldCount
		if idx == fieldName && m.mode == ModeLogin {
			continue
		}
		return idx
	}
}

func (m *Model) setFocus(idx int) {
	m.inputs[m.focus].Blur()
	m.focus = idx
	m.inputs[m.focus].Focus()
}

func (m Model) complete() bool {
	if strings.TrimSpace(m.inputs[fieldEmail].Value()) == "" {
		return false
	}
	if m.inputs[fieldPassword].Value() == "" {
		return false
	}
	if m.mode == ModeSignup && strings.TrimSpace(m.inputs[fieldName].Value()) == "" {
		return false
	}
	return true
}

func (m Model) submit() (Model, tea.Cmd) {
	if !m.complete() {
		m.errText = "all fields are required"
		return m, nil
	}

	m.busy = true
	m.errText = ""

	name := strings.TrimSpace(m.inputs[fieldName].Value())
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	mode := m.mode
	manager := m.manager

	return m, func() tea.Msg {
		var err error
		if mode == ModeSignup {
			err = manager.Signup(context.Background(), name, email, password)
		} else {
			err = manager.Login(context.Background(), email, password)
		}
		return resultMsg{err: err}
	}
}

// friendlyAuthError maps backend failures to the message the form
// shows. Credential rejections all read the same way.
func friendlyAuthError(err error) string {
	if api.IsStatus(err, http.StatusUnauthorized) {
		return "Invalid email or password"
	}
	return err.Error()
}
