// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat keeps the in-memory projection of sessions and their
// message lists consistent with the backend.
//
// The projection is a value-type State mutated only through pure
// transition functions, so every observable update is an atomic
// copy-and-replace. A Store wraps the transitions with the network
// calls: optimistic message send (no rollback), lazy per-session
// message loading, insertion-order session list (newest first), title
// auto-generation after the first message, and active-pointer
// reassignment on delete. Every asynchronous completion is applied to
// the session token captured at dispatch time, never to whatever
// session happens to be active when the response lands.
package chat
