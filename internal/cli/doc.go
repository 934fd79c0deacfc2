// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface: account
// commands (login, signup, logout, passwd), session management, an
// interactive chat REPL, and status output. Parsing is hand-rolled;
// every handler returns an error and lets main decide the exit code.
package cli
