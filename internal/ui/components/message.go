// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/chat"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single chat message: human messages as a
// right-leaning blue bubble, AI messages as markdown under a dimmed
// header.
type MessageBubble struct {
	Message       chat.Message
	Width         int
	ShowTimestamp bool

	theme    *styles.Theme
	markdown *glamour.TermRenderer
}

// NewMessageBubble creates a bubble for one message.
func NewMessageBubble(msg chat.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message.
func (b *MessageBubble) View() string {
	if b.Message.Sender == chat.SenderAI {
		return b.renderAI()
	}
	return b.renderHuman()
}

// ==========================================================================
// HUMAN BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderHuman() string {
	content := b.Message.Text
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.HumanBubble.Width(contentWidth).Render(wrapped)

	header := b.headerLine("you")

	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// AI MESSAGE - Markdown-rendered, left-aligned
// ==========================================================================

func (b *MessageBubble) renderAI() string {
	content := b.Message.Text
	if content == "" {
		content = "..."
	}

	header := b.headerLine("assistant")
	body := b.renderMarkdown(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// renderMarkdown renders AI message text through glamour, falling back
// to word-wrapped plain text (with highlighted code fences) when the
// renderer cannot be built.
func (b *MessageBubble) renderMarkdown(content string) string {
	width := b.Width - 4
	if width < 20 {
		width = 20
	}

	if b.markdown == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			b.markdown = r
		}
	}

	if b.markdown != nil {
		if out, err := b.markdown.Render(content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return ParseCodeBlocks(wordWrap(content, width), width)
}

// ==========================================================================
// HELPERS
// ==========================================================================

func (b *MessageBubble) headerLine(role string) string {
	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	header := roleStyle.Render(role)
	if b.ShowTimestamp && b.Message.Timestamp != "" {
		header += " " + roleStyle.Render(b.Message.Timestamp)
	}
	return header
}

// wordWrap wraps text to fit within the specified width. Widths are
// measured in display cells, not runes, so CJK text wraps correctly.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if util.StringWidth(current)+1+util.StringWidth(word) <= width {
				current += " " + word
			} else {
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
	}
	return result.String()
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a session's messages in order.
type MessageList struct {
	Messages []chat.Message
	Width    int
	theme    *styles.Theme
}

// NewMessageList creates an empty message list.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{Width: 80, theme: theme}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []chat.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return emptyStyle.Render("No messages yet. Say something!")
	}

	bubbles := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubbles = append(bubbles, bubble.View())
	}
	return strings.Join(bubbles, "\n")
}
