// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "hello world", 20, "hello world"},
		{"wraps", "one two three", 7, "one two\nthree"},
		{"zero width passthrough", "abc", 0, "abc"},
		{"preserves blank lines", "a\n\nb", 10, "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.text, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestSessionListCursor(t *testing.T) {
	sl := NewSessionList(styles.NewTheme())
	sl.SetSessions([]chat.Session{
		{Token: "tok-2", ShortName: "Second"},
		{Token: "tok-1"},
	})

	if _, ok := sl.Selected(); !ok {
		t.Fatal("expected a selection")
	}

	sl.MoveDown()
	sel, _ := sl.Selected()
	if sel.Token != "tok-1" {
		t.Errorf("selected = %q", sel.Token)
	}
	sl.MoveDown() // clamped at bottom
	sel, _ = sl.Selected()
	if sel.Token != "tok-1" {
		t.Errorf("cursor ran past end: %q", sel.Token)
	}

	sl.MoveUp()
	sl.MoveUp() // clamped at top
	sel, _ = sl.Selected()
	if sel.Token != "tok-2" {
		t.Errorf("cursor ran past start: %q", sel.Token)
	}

	// Cursor clamps when the list shrinks.
	sl.MoveDown()
	sl.SetSessions([]chat.Session{{Token: "tok-2"}})
	sel, ok := sl.Selected()
	if !ok || sel.Token != "tok-2" {
		t.Errorf("cursor not clamped after shrink")
	}
}

func TestSessionListViewMarksActive(t *testing.T) {
	sl := NewSessionList(styles.NewTheme())
	sl.SetSessions([]chat.Session{{Token: "tok-1", ShortName: "Ideas"}})
	sl.Active = "tok-1"

	view := sl.View()
	if !strings.Contains(view, "Ideas") {
		t.Error("view missing session title")
	}
	if !strings.Contains(view, "*") {
		t.Error("view missing active marker")
	}
}

func TestMessageBubbleView(t *testing.T) {
	theme := styles.NewTheme()

	human := NewMessageBubble(chat.Message{Text: "hello", Sender: chat.SenderHuman, Timestamp: "10:00"}, theme)
	if v := human.View(); !strings.Contains(v, "hello") || !strings.Contains(v, "you") {
		t.Errorf("human bubble = %q", v)
	}

	ai := NewMessageBubble(chat.Message{Text: "hi there", Sender: chat.SenderAI, Timestamp: "10:00"}, theme)
	if v := ai.View(); !strings.Contains(v, "hi there") || !strings.Contains(v, "assistant") {
		t.Errorf("ai bubble = %q", v)
	}
}

func TestMessageListEmptyState(t *testing.T) {
	ml := NewMessageList(styles.NewTheme())
	if !strings.Contains(ml.View(), "No messages yet") {
		t.Error("empty state not rendered")
	}
}

func TestDeleteDialogToggle(t *testing.T) {
	d := NewDeleteDialog(chat.Session{Token: "tok-1", ShortName: "Ideas"}, styles.NewTheme())
	if d.Confirm {
		t.Fatal("delete should not be pre-confirmed")
	}
	d.Toggle()
	if !d.Confirm {
		t.Error("Toggle did not move focus")
	}
	if !strings.Contains(d.View(), "Ideas") {
		t.Error("dialog missing session title")
	}
}

func TestRenameDialogSeedsTitle(t *testing.T) {
	d := NewRenameDialog(chat.Session{Token: "tok-1", ShortName: "Ideas"}, styles.NewTheme())
	if d.Value() != "Ideas" {
		t.Errorf("initial value = %q", d.Value())
	}
	if d.Token != "tok-1" {
		t.Errorf("captured token = %q", d.Token)
	}
}

func TestParseCodeBlocks(t *testing.T) {
	text := "before\n```go\nfmt.Println(1)\n```\nafter"
	out := ParseCodeBlocks(text, 60)
	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Error("surrounding text lost")
	}
	if !strings.Contains(out, "go") {
		t.Error("language badge missing")
	}
}
