// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the parley
// TUI: message bubbles with markdown rendering, the session list pane,
// the status bar, and the rename/delete dialogs.
package components
