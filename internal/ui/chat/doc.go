// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat screen: the session pane,
// the message viewport, the input line, and the rename/delete
// dialogs. All intents are forwarded to the chat store; every
// asynchronous command closes over the session token it was
// dispatched for, so late completions land in the right session.
package chat
