// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// WIRE TYPES
// =============================================================================

// User is an account as returned by the user endpoints.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is one chat session as returned by the session list endpoint.
// The token is the canonical identifier; the short name is the
// user-visible title and may be empty for fresh sessions.
type Session struct {
	Token     string `json:"session_token"`
	ShortName string `json:"session_short_name,omitempty"`
	Title     string `json:"title,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Message is a single chat message. The backend names the content
// field "messages" (plural); keep the wire name, expose a sane one.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"messages"`
	Sender    string `json:"sender"` // "human" or "ai"
	Timestamp string `json:"timestamp"`
}

// Senders.
const (
	SenderHuman = "human"
	SenderAI    = "ai"
)

// =============================================================================
// REQUEST/RESPONSE BODIES
// =============================================================================

type userCreateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userCreateResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type userValidateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userValidateResponse struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type passwordUpdateRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type sessionListResponse struct {
	Sessions []Session `json:"sessions"`
}

type sessionCreateRequest struct {
	UserID int    `json:"user_id"`
	Title  string `json:"title"`
}

type sessionCreateResponse struct {
	SessionToken string `json:"session_token"`
}

type sessionRenameRequest struct {
	SessionShortName string `json:"session_short_name"`
}

type sessionNameRequest struct {
	Topic string `json:"topic"`
}

type sessionNameResponse struct {
	SessionName string `json:"session_name"`
	Message     string `json:"message"`
}

type messageListResponse struct {
	Messages []Message `json:"messages"`
}

type chatRequest struct {
	SessionToken string `json:"session_token"`
	Message      string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type messageResponse struct {
	Message string `json:"message"`
}
