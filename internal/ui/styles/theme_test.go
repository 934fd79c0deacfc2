// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// A few representative styles must render without panicking.
	if theme.HumanBubble.Render("hi") == "" {
		t.Error("HumanBubble rendered empty")
	}
	if theme.SessionItemSelected.Render("x") == "" {
		t.Error("SessionItemSelected rendered empty")
	}
}

func TestStatusRenderers(t *testing.T) {
	if !strings.Contains(RenderSuccess("done"), "[OK]") {
		t.Error("RenderSuccess missing shape indicator")
	}
	if !strings.Contains(RenderError("bad"), "[X]") {
		t.Error("RenderError missing shape indicator")
	}
	if !strings.Contains(RenderWarning("careful"), "[!]") {
		t.Error("RenderWarning missing shape indicator")
	}
	if !strings.Contains(RenderInfo("fyi"), "[i]") {
		t.Error("RenderInfo missing shape indicator")
	}
}
