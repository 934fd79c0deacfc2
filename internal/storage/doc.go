// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the two client-side key-value scopes parley
// persists between operations: a durable, per-device scope holding the
// authenticated user identity (a JSON file under the config directory,
// written atomically) and a volatile, per-process scope holding the
// last-active session token. Clearing the user clears both scopes.
package storage
