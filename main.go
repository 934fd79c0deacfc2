// parley - a terminal client for the parley chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/auth"
	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/cli"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/storage"
	uichat "github.com/jeranaias/parley-tui/internal/ui/chat"
	"github.com/jeranaias/parley-tui/internal/ui/login"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.ParseArgs(os.Args[1:])

	if cmd == cli.CmdTUI {
		runTUI()
		return
	}

	if err := cli.Run(cmd, args); err != nil {
		cli.Fatal(err)
	}
}

// runTUI starts the full-screen interface.
func runTUI() {
	cfg := config.Global()

	st, err := storage.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening local storage: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, st).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second).
		WithRateLimit(cfg.API.RatePerSec)
	manager := auth.NewManager(client, st)
	chats := chat.NewStore(client, st)

	theme := styles.NewTheme()
	m := newAppModel(theme, manager, chats)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Reload config edits while the TUI runs. Reloads only affect
	// new requests; the running client keeps its settings.
	if watcher, werr := config.NewWatcher(func(c *config.Config) {
		config.SetGlobal(c)
	}); werr == nil {
		if werr := watcher.Watch(); werr == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running parley: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// appState selects the active screen.
type appState int

const (
	stateLogin appState = iota
	stateChat
)

// appModel is the top-level Bubble Tea model. It shows the login form
// while anonymous and hands over to the chat screen once
// authenticated.
type appModel struct {
	state appState
	theme *styles.Theme

	manager *auth.Manager
	chats   *chat.Store

	loginModel login.Model
	chatModel  uichat.Model

	width  int
	height int
}

func newAppModel(theme *styles.Theme, manager *auth.Manager, chats *chat.Store) *appModel {
	state := stateLogin
	if manager.IsAuthenticated() {
		state = stateChat
	}
	return &appModel{
		state:      state,
		theme:      theme,
		manager:    manager,
		chats:      chats,
		loginModel: login.New(manager, theme),
		chatModel:  uichat.New(chats, manager, theme),
	}
}

// Init implements tea.Model.
func (m *appModel) Init() tea.Cmd {
	if m.state == stateChat {
		return m.chatModel.Init()
	}
	return m.loginModel.Init()
}

// Update implements tea.Model.
func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Both screens track the size so the handover is seamless.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.loginModel, cmd = m.loginModel.Update(msg)
		cmds = append(cmds, cmd)
		m.chatModel, cmd = m.chatModel.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case login.AuthenticatedMsg:
		m.state = stateChat
		return m, m.chatModel.Init()
	}

	var cmd tea.Cmd
	switch m.state {
	case stateLogin:
		m.loginModel, cmd = m.loginModel.Update(msg)
	case stateChat:
		m.chatModel, cmd = m.chatModel.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *appModel) View() string {
	if m.state == stateChat {
		return m.chatModel.View()
	}
	return m.loginModel.View()
}
