// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for the parley CLI.
//
// USABILITY: Markdown rendering and input history for a better CLI
// experience.
//
// Command: chat
//
// Interactive commands (during chat):
//   /help, /h           Show available commands
//   /sessions, /ls      List sessions
//   /switch TOKEN       Switch the active session
//   /new                Create a session
//   /history            Show the active session's messages
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/config"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive
// chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history loaded from the config
// directory.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists input history with owner-only permissions.
func (c *ChatCLI) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand runs the interactive REPL against the active
// session.
func HandleChatCommand(d *deps, args Args) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}
	if !d.manager.IsAuthenticated() {
		return fmt.Errorf("not logged in (run 'parley login' first)")
	}

	ctx := context.Background()
	if err := d.chats.Load(ctx); err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}
	if d.chats.ActiveToken() == "" {
		if _, err := d.chats.NewSession(ctx); err != nil {
			return fmt.Errorf("creating session: %w", err)
		}
	}

	if !args.Quiet {
		printWelcome(d)
	}

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput(promptStyle.Render("parley> "))
		if err != nil {
			// Ctrl+C or Ctrl+D: exit gracefully.
			fmt.Println()
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			keepGoing, err := handleSlashCommand(d, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			}
			if !keepGoing {
				fmt.Println(infoStyle.Render("Goodbye!"))
				return nil
			}
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		if err := processMessage(d, line); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
	}
}

// processMessage sends one message and prints the reply. The human
// message stays in the transcript even when the send fails.
func processMessage(d *deps, text string) error {
	reply, err := d.chats.Send(context.Background(), text)
	if err != nil {
		return err
	}

	fmt.Println()
	displayReply(reply.Text)
	fmt.Println()
	return nil
}

// displayReply renders the reply as markdown on a TTY, plain
// otherwise.
func displayReply(text string) {
	if IsStdoutTTY() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(GetTerminalWidth()-2),
		)
		if err == nil {
			if out, rerr := r.Render(text); rerr == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Println(text)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands. Returns keepGoing=false
// to exit the REPL.
func handleSlashCommand(d *deps, cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true, nil
	}
	ctx := context.Background()

	switch strings.ToLower(parts[0]) {
	case "/help", "/h", "/?", "/":
		printReplHelp()
		return true, nil

	case "/sessions", "/ls":
		active := d.chats.ActiveToken()
		for _, sess := range d.chats.Sessions() {
			marker := "  "
			if sess.Token == active {
				marker = commandStyle.Render("* ")
			}
			fmt.Printf("%s%s  %s\n", marker, sess.Title(), infoStyle.Render(sess.Token))
		}
		return true, nil

	case "/switch":
		if len(parts) < 2 {
			return true, fmt.Errorf("usage: /switch TOKEN")
		}
		if err := d.chats.SetActive(ctx, parts[1]); err != nil {
			return true, err
		}
		fmt.Printf("%s switched to %s\n", commandStyle.Render("[OK]"), activeTitle(d))
		return true, nil

	case "/new":
		sess, err := d.chats.NewSession(ctx)
		if err != nil {
			return true, err
		}
		fmt.Printf("%s created %s\n", commandStyle.Render("[OK]"), sess.Title())
		return true, nil

	case "/history":
		printTranscript(d)
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", parts[0])
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

func printWelcome(d *deps) {
	user := d.manager.User()

	fmt.Println()
	fmt.Println(welcomeStyle.Render("parley interactive chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))
	if user != nil {
		fmt.Printf("%s %s\n", infoStyle.Render("Account:"), commandStyle.Render(user.Email))
	}
	if title := activeTitle(d); title != "" {
		fmt.Printf("%s %s\n", infoStyle.Render("Session:"), commandStyle.Render(title))
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

func printReplHelp() {
	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Available Commands"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Println()

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/sessions, /ls", "List sessions"},
		{"/switch TOKEN", "Switch the active session"},
		{"/new", "Create a session"},
		{"/history", "Show the active session's messages"},
		{"/quit, /q", "Exit chat"},
	}
	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-15s", c.cmd)),
			infoStyle.Render(c.desc))
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: Ctrl+D exits"))
	fmt.Println()
}

// printTranscript prints the active session's messages, truncated to
// one line each.
func printTranscript(d *deps) {
	messages := d.chats.Messages(d.chats.ActiveToken())
	if len(messages) == 0 {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Conversation History"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 25)))
	fmt.Println()

	for i, msg := range messages {
		role := infoStyle.Render(msg.Sender)
		if msg.Sender == chat.SenderHuman {
			role = promptStyle.Render("You")
		} else if msg.Sender == chat.SenderAI {
			role = welcomeStyle.Render("AI")
		}

		// UNICODE: rune-based truncation so multibyte text is never
		// split mid-character.
		content := strings.ReplaceAll(msg.Text, "\n", " ")
		runes := []rune(content)
		if len(runes) > 100 {
			content = string(runes[:100]) + "..."
		}
		fmt.Printf("  %d. %s: %s\n", i+1, role, content)
	}
	fmt.Println()
}
