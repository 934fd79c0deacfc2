// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for parley.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/auth"
	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/storage"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdSignup
	CmdLogout
	CmdPasswd
	CmdStatus
	CmdSessions
	CmdChat
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Quiet bool
	JSON  bool

	// Raw args remaining after the command word.
	Raw []string
}

const usageText = `parley - terminal client for the parley chat service

Usage:
  parley                       Start TUI (default)
  parley login                 Log in and store the account locally
  parley signup                Create an account
  parley logout                Log out and clear local state
  parley passwd                Change the account password
  parley status                Show connection and account status
  parley sessions [subcommand] Session management (list, new, rename, delete, switch)
  parley chat                  Interactive chat REPL
  parley version               Show version
  parley help                  Show this help

Global flags:
  -q, --quiet    Minimal output
  --json         JSON output where supported

Session subcommands:
  parley sessions              List sessions (newest first)
  parley sessions new          Create a session and make it active
  parley sessions switch TOKEN Make a session active
  parley sessions rename TOKEN NAME
  parley sessions delete TOKEN [--yes]

Environment:
  PARLEY_API_URL   Override the backend URL
  PARLEY_THEME     Override the UI theme
`

// ParseArgs maps argv (without the program name) to a command and its
// remaining arguments.
func ParseArgs(argv []string) (Command, Args) {
	args := Args{}

	var rest []string
	cmd := CmdTUI
	seenCommand := false

	for _, arg := range argv {
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
			continue
		case "--json":
			args.JSON = true
			continue
		}

		if seenCommand {
			rest = append(rest, arg)
			continue
		}

		seenCommand = true
		switch arg {
		case "login":
			cmd = CmdLogin
		case "signup", "register":
			cmd = CmdSignup
		case "logout":
			cmd = CmdLogout
		case "passwd", "password":
			cmd = CmdPasswd
		case "status", "s":
			cmd = CmdStatus
		case "sessions", "session":
			cmd = CmdSessions
		case "chat":
			cmd = CmdChat
		case "version", "-V", "--version":
			cmd = CmdVersion
		case "help", "-h", "--help":
			cmd = CmdHelp
		default:
			// Unknown word: treat as help so the user sees the
			// command list instead of a silent TUI start.
			cmd = CmdHelp
			rest = append(rest, arg)
		}
	}

	args.Raw = rest
	return cmd, args
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("parley %s (%s, built %s, %s/%s)\n",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// DISPATCH
// =============================================================================

// deps bundles the clients every handler needs.
type deps struct {
	store   *storage.Store
	client  *api.Client
	manager *auth.Manager
	chats   *chat.Store
}

// newDeps wires storage, the API client, and the managers from global
// config.
func newDeps() (*deps, error) {
	st, err := storage.NewStore()
	if err != nil {
		return nil, fmt.Errorf("opening local storage: %w", err)
	}

	cfg := config.Global()
	client := api.NewClient(cfg.API.BaseURL, st).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second).
		WithRateLimit(cfg.API.RatePerSec)

	return &deps{
		store:   st,
		client:  client,
		manager: auth.NewManager(client, st),
		chats:   chat.NewStore(client, st),
	}, nil
}

// Run dispatches a parsed command. CmdTUI is handled by main, not
// here.
func Run(cmd Command, args Args) error {
	switch cmd {
	case CmdHelp:
		PrintUsage()
		return nil
	case CmdVersion:
		PrintVersion()
		return nil
	}

	d, err := newDeps()
	if err != nil {
		return err
	}

	switch cmd {
	case CmdLogin:
		return HandleLoginCommand(d, args)
	case CmdSignup:
		return HandleSignupCommand(d, args)
	case CmdLogout:
		return HandleLogoutCommand(d, args)
	case CmdPasswd:
		return HandlePasswdCommand(d, args)
	case CmdStatus:
		return HandleStatusCommand(d, args)
	case CmdSessions:
		return HandleSessionsCommand(d, args)
	case CmdChat:
		return HandleChatCommand(d, args)
	default:
		PrintUsage()
		return nil
	}
}

// Fatal prints an error and exits with a non-zero code.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
	os.Exit(1)
}
