// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/auth"
	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusSessions
)

// sessionPaneWidth is the fixed width of the left pane.
const sessionPaneWidth = 30

// Model is the chat screen.
type Model struct {
	store   *chat.Store
	manager *auth.Manager
	theme   *styles.Theme

	viewport    viewport.Model
	input       textinput.Model
	spin        spinner.Model
	sessionList *components.SessionList
	messageList *components.MessageList
	statusBar   *components.StatusBar

	renameDialog *components.RenameDialog
	deleteDialog *components.DeleteDialog

	focus   focusArea
	loading bool // initial session-list load in flight
	waiting bool // a send is in flight
	ready   bool

	width  int
	height int
}

// New creates the chat screen around an authenticated store.
func New(store *chat.Store, manager *auth.Manager, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "type a message..."
	input.CharLimit = 4000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	return Model{
		store:       store,
		manager:     manager,
		theme:       theme,
		input:       input,
		spin:        spin,
		sessionList: components.NewSessionList(theme),
		messageList: components.NewMessageList(theme),
		statusBar:   components.NewStatusBar(theme),
		focus:       focusInput,
		loading:     true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadSessionsCmd(m.store),
		textinput.Blink,
		m.spin.Tick,
	)
}

// refresh re-reads the store and updates every derived view. Called
// after any state transition so the screen always renders the store's
// current snapshot.
func (m *Model) refresh() {
	sessions := m.store.Sessions()
	active := m.store.ActiveToken()

	m.sessionList.SetSessions(sessions)
	m.sessionList.Active = active

	m.messageList.SetMessages(m.store.Messages(active))
	if m.ready {
		atBottom := m.viewport.AtBottom()
		m.viewport.SetContent(m.messageList.View())
		if atBottom {
			m.viewport.GotoBottom()
		}
	}

	m.statusBar.Session = ""
	for _, sess := range sessions {
		if sess.Token == active {
			m.statusBar.Session = sess.Title()
			break
		}
	}
	if user := m.manager.User(); user != nil {
		m.statusBar.User = user.Email
	}
}

// layout recomputes pane sizes after a resize.
func (m *Model) layout() {
	chatWidth := m.width - sessionPaneWidth - 2
	if chatWidth < 20 {
		chatWidth = 20
	}
	// Header, input line, and status bar each take a row; the status
	// bar grows a second row when an error is shown.
	contentHeight := m.height - 4
	if m.statusBar.Error != "" {
		contentHeight--
	}
	if contentHeight < 4 {
		contentHeight = 4
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = contentHeight
	}

	m.sessionList.SetSize(sessionPaneWidth, contentHeight)
	m.messageList.SetWidth(chatWidth - 2)
	m.statusBar.SetWidth(m.width)
	m.input.Width = chatWidth - 6

	m.refresh()
	m.viewport.GotoBottom()
}
