// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// session_cmd.go - session management subcommands.
//
// Command: sessions
// Subcommands:
//   (none), list      List sessions, newest first
//   new               Create a session and make it active
//   switch TOKEN      Make a session active
//   rename TOKEN NAME Rename a session
//   delete TOKEN      Delete a session (asks unless --yes)
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/parley-tui/internal/util"
)

// HandleSessionsCommand dispatches the sessions subcommands.
func HandleSessionsCommand(d *deps, args Args) error {
	if !d.manager.IsAuthenticated() {
		return fmt.Errorf("not logged in (run 'parley login' first)")
	}

	parser := NewArgParser(args.Raw)
	ctx := context.Background()

	if err := d.chats.Load(ctx); err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	switch parser.Subcommand() {
	case "", "list", "ls":
		return listSessions(d, args)

	case "new":
		sess, err := d.chats.NewSession(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s created %s (%s)\n",
			commandStyle.Render("[OK]"), sess.Title(), sess.Token)
		return nil

	case "switch":
		token := parser.Positional(1)
		if token == "" {
			return fmt.Errorf("usage: parley sessions switch TOKEN")
		}
		if err := d.chats.SetActive(ctx, token); err != nil {
			return err
		}
		fmt.Printf("%s active session is now %s\n",
			commandStyle.Render("[OK]"), token)
		return nil

	case "rename":
		token := parser.Positional(1)
		name := strings.Join(parser.PositionalFrom(2), " ")
		if name == "" {
			name = parser.Flag("name")
		}
		if token == "" || name == "" {
			return fmt.Errorf("usage: parley sessions rename TOKEN NAME")
		}
		if err := d.chats.Rename(ctx, token, name); err != nil {
			return err
		}
		fmt.Printf("%s renamed to %s\n", commandStyle.Render("[OK]"), name)
		return nil

	case "delete", "rm":
		token := parser.Positional(1)
		if token == "" {
			return fmt.Errorf("usage: parley sessions delete TOKEN [--yes]")
		}
		if !parser.BoolFlag("yes") && !parser.BoolFlag("y") {
			if !confirmDelete(token) {
				fmt.Println(infoStyle.Render("cancelled"))
				return nil
			}
		}
		if err := d.chats.Delete(ctx, token); err != nil {
			return err
		}
		fmt.Printf("%s deleted %s\n", commandStyle.Render("[OK]"), token)
		return nil

	default:
		return fmt.Errorf("unknown sessions subcommand: %s", parser.Subcommand())
	}
}

// listSessions prints the session list, newest first, marking the
// active one.
func listSessions(d *deps, args Args) error {
	sessions := d.chats.Sessions()
	active := d.chats.ActiveToken()

	if args.JSON {
		type row struct {
			Token  string `json:"token"`
			Title  string `json:"title"`
			Active bool   `json:"active"`
		}
		rows := make([]row, 0, len(sessions))
		for _, sess := range sessions {
			rows = append(rows, row{Token: sess.Token, Title: sess.Title(), Active: sess.Token == active})
		}
		return json.NewEncoder(os.Stdout).Encode(rows)
	}

	if len(sessions) == 0 {
		fmt.Println(infoStyle.Render("no sessions (run 'parley sessions new')"))
		return nil
	}

	fmt.Println(summaryHeaderStyle.Render("Sessions"))
	for _, sess := range sessions {
		marker := "  "
		if sess.Token == active {
			marker = commandStyle.Render("* ")
		}
		title := util.TruncateWidth(sess.Title(), 40)
		fmt.Printf("%s%s  %s\n", marker, util.PadRight(title, 40), infoStyle.Render(sess.Token))
	}
	return nil
}

func confirmDelete(token string) bool {
	answer, err := promptLine(fmt.Sprintf("delete session %s? [y/N]", token))
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// activeTitle returns the active session's display title, or "".
func activeTitle(d *deps) string {
	active := d.chats.ActiveToken()
	for _, sess := range d.chats.Sessions() {
		if sess.Token == active {
			return sess.Title()
		}
	}
	return ""
}
