// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the typed HTTP client for the parley backend.
//
// The backend is a small REST service: user accounts under /users,
// chat sessions under /sessions, and message exchange under /chat.
// Every call returns typed results and normalizes non-2xx responses
// into *APIError values carrying the status code and the backend's
// message field.
package api
