// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jeranaias/parley-tui/internal/api"
)

func TestParseArgsCommands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"default is TUI", nil, CmdTUI},
		{"login", []string{"login"}, CmdLogin},
		{"signup alias", []string{"register"}, CmdSignup},
		{"logout", []string{"logout"}, CmdLogout},
		{"passwd alias", []string{"password"}, CmdPasswd},
		{"status short", []string{"s"}, CmdStatus},
		{"sessions singular", []string{"session"}, CmdSessions},
		{"chat", []string{"chat"}, CmdChat},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls back to help", []string{"frobnicate"}, CmdHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseArgs(tt.argv)
			if cmd != tt.want {
				t.Errorf("ParseArgs(%v) = %v, want %v", tt.argv, cmd, tt.want)
			}
		})
	}
}

func TestParseArgsGlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--quiet", "sessions", "list", "--json"})
	if cmd != CmdSessions {
		t.Errorf("cmd = %v", cmd)
	}
	if !args.Quiet || !args.JSON {
		t.Errorf("flags not parsed: quiet=%v json=%v", args.Quiet, args.JSON)
	}
	if len(args.Raw) != 1 || args.Raw[0] != "list" {
		t.Errorf("raw = %v", args.Raw)
	}
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"rename", "tok-1", "My", "Plans", "--name=Other", "--yes"})

	if p.Subcommand() != "rename" {
		t.Errorf("subcommand = %q", p.Subcommand())
	}
	if p.Positional(1) != "tok-1" {
		t.Errorf("positional(1) = %q", p.Positional(1))
	}
	if got := p.PositionalFrom(2); len(got) != 2 || got[0] != "My" {
		t.Errorf("positionalFrom(2) = %v", got)
	}
	if p.Flag("name") != "Other" {
		t.Errorf("flag name = %q", p.Flag("name"))
	}
	if !p.BoolFlag("yes") {
		t.Error("bool flag yes not set")
	}
	if p.BoolFlag("no-such") {
		t.Error("absent bool flag should be false")
	}
}

func TestArgParserFlagFormats(t *testing.T) {
	p := NewArgParser([]string{"--lines", "50", "--since=2024-01-01", "--json", "-v"})

	if p.Flag("lines") != "50" {
		t.Errorf("space-separated flag = %q", p.Flag("lines"))
	}
	if p.Flag("since") != "2024-01-01" {
		t.Errorf("equals flag = %q", p.Flag("since"))
	}
	if !p.BoolFlag("json") || !p.BoolFlag("v") {
		t.Error("boolean flags not parsed")
	}
	if p.PositionalCount() != 0 {
		t.Errorf("positional count = %d", p.PositionalCount())
	}
	if p.FlagOrDefault("missing", "fallback") != "fallback" {
		t.Error("FlagOrDefault did not fall back")
	}
}

func TestFriendlyPasswdError(t *testing.T) {
	wrongCurrent := &api.APIError{Status: http.StatusBadRequest, Message: "wrong password"}
	if got := friendlyPasswdError(wrongCurrent); got.Error() != "current password is incorrect" {
		t.Errorf("400 mapping = %q", got.Error())
	}

	missing := &api.APIError{Status: http.StatusNotFound, Message: "user not found"}
	if got := friendlyPasswdError(missing); got.Error() != "account not found on the backend" {
		t.Errorf("404 mapping = %q", got.Error())
	}

	// Other failures pass through untouched.
	plain := errors.New("connection refused")
	if got := friendlyPasswdError(plain); got != plain {
		t.Errorf("generic error rewritten: %v", got)
	}
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--color=true"})
	if p.BoolFlag("json") {
		t.Error("--json=false should be false")
	}
	if !p.BoolFlag("color") {
		t.Error("--color=true should be true")
	}
}
