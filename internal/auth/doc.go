// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth tracks the client's authentication state: anonymous or
// authenticated as exactly one user. The manager seeds itself from the
// durable storage scope, keeps the in-memory identity and the stored
// one in step, and tears both down together on logout.
package auth
