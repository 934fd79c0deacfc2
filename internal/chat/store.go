// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/storage"
)

// Store errors.
var (
	// ErrNoActiveSession indicates a send was attempted with no
	// session selected.
	ErrNoActiveSession = errors.New("no active session")
)

// Store orchestrates the state transitions around the network calls.
//
// Transitions are applied under a mutex; network calls run outside
// it, so a completion landing late is applied to the token it was
// dispatched for, regardless of what has become active meanwhile.
type Store struct {
	client  *api.Client
	storage *storage.Store

	mu    sync.Mutex
	state State
}

// NewStore creates a store whose active pointer is restored from the
// volatile storage scope.
func NewStore(client *api.Client, st *storage.Store) *Store {
	return &Store{
		client:  client,
		storage: st,
		state:   NewState(st.SessionToken()),
	}
}

// Snapshot returns a copy of the current state for rendering.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.state)
}

// Sessions returns a copy of the session list, newest first.
func (s *Store) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Session(nil), s.state.Sessions...)
}

// ActiveToken returns the active session token, or "".
func (s *Store) ActiveToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Active
}

// Messages returns the cached messages for a token (nil when the
// token has not been loaded).
func (s *Store) Messages(token string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.state.Messages[token]...)
}

// =============================================================================
// LOADING
// =============================================================================

// Load fetches the session list and installs it. When the restored
// active pointer no longer references a listed session, the first
// (newest) session becomes active. Messages for the resulting active
// session are loaded lazily afterwards.
func (s *Store) Load(ctx context.Context) error {
	userID := s.storage.UserID()
	if userID == 0 {
		return &api.APIError{Status: http.StatusUnauthorized, Message: "user not authenticated"}
	}

	apiSessions, err := s.client.ListSessions(ctx, userID)
	if err != nil {
		return err
	}
	sessions := make([]Session, 0, len(apiSessions))
	for _, as := range apiSessions {
		sessions = append(sessions, fromAPISession(as))
	}

	s.mu.Lock()
	s.state = sessionsLoaded(s.state, sessions)
	active := s.state.Active
	s.mu.Unlock()
	s.persistActive(active)

	if active != "" {
		return s.EnsureMessages(ctx, active)
	}
	return nil
}

// EnsureMessages populates the message cache for a token on first
// use. Already-cached tokens are never refetched for the lifetime of
// the state.
func (s *Store) EnsureMessages(ctx context.Context, token string) error {
	s.mu.Lock()
	_, cached := s.state.Messages[token]
	s.mu.Unlock()
	if cached {
		return nil
	}

	apiMsgs, err := s.client.GetMessages(ctx, token)
	if err != nil {
		return err
	}
	msgs := make([]Message, 0, len(apiMsgs))
	for _, am := range apiMsgs {
		msgs = append(msgs, fromAPIMessage(am))
	}

	s.mu.Lock()
	s.state = messagesLoaded(s.state, token, msgs)
	s.mu.Unlock()
	return nil
}

// SetActive switches the active session, persists the pointer to the
// volatile scope, and loads the session's messages if not yet cached.
func (s *Store) SetActive(ctx context.Context, token string) error {
	s.mu.Lock()
	s.state = activated(s.state, token)
	s.mu.Unlock()
	s.persistActive(token)
	return s.EnsureMessages(ctx, token)
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

// NewSession asks the backend for a session token, prepends a
// placeholder-titled session, and makes it active. The API client
// persists the token as the volatile active pointer.
func (s *Store) NewSession(ctx context.Context) (Session, error) {
	userID := s.storage.UserID()
	if userID == 0 {
		return Session{}, &api.APIError{Status: http.StatusUnauthorized, Message: "user not authenticated"}
	}

	token, err := s.client.CreateSession(ctx, userID, PlaceholderTitle)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		Token:     token,
		Timestamp: time.Now().Format("2006-01-02 15:04"),
	}
	s.mu.Lock()
	s.state = sessionCreated(s.state, sess)
	s.mu.Unlock()
	return sess, nil
}

// Delete removes the session on the backend and then from local
// state, evicting its message cache. A failed delete leaves the
// session present and is returned to the caller. When the deleted
// session was active, the pointer moves to the first remaining
// session (persisted), or clears.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.DeleteSession(ctx, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = sessionDeleted(s.state, token)
	active := s.state.Active
	s.mu.Unlock()
	s.persistActive(active)
	return nil
}

// Rename sets the session's short name on the backend and then
// locally. A failed rename leaves local state untouched and is
// returned to the caller.
func (s *Store) Rename(ctx context.Context, token, name string) error {
	if err := s.client.RenameSession(ctx, token, name); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = sessionRenamed(s.state, token, name)
	s.mu.Unlock()
	return nil
}

// =============================================================================
// MESSAGE SEND
// =============================================================================

// BeginSend appends the optimistic human message to the active
// session's cache, before any network call. It returns the captured
// session token for the follow-up calls and whether the cache now
// holds exactly one message, which is the title-generation gate.
//
// There is no rollback: a send whose network half fails leaves the
// human message in place.
func (s *Store) BeginSend(text string) (token string, first bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token = s.state.Active
	if token == "" {
		return "", false, ErrNoActiveSession
	}

	s.state = messageAppended(s.state, token, newHumanMessage(text))
	return token, len(s.state.Messages[token]) == 1, nil
}

// CompleteSend posts the text to the backend and appends the AI reply
// to the captured token's cache, which may no longer be the active
// session.
func (s *Store) CompleteSend(ctx context.Context, token, text string) (Message, error) {
	apiMsg, err := s.client.SendMessage(ctx, token, text)
	if err != nil {
		return Message{}, err
	}

	msg := fromAPIMessage(apiMsg)
	s.mu.Lock()
	s.state = messageAppended(s.state, token, msg)
	s.mu.Unlock()
	return msg, nil
}

// GenerateTitle asks the backend to derive a title from the topic and
// installs it on the captured session. A failure leaves the
// placeholder title untouched.
func (s *Store) GenerateTitle(ctx context.Context, token, topic string) (string, error) {
	name, err := s.client.GenerateSessionName(ctx, token, topic)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.state = sessionRenamed(s.state, token, name)
	s.mu.Unlock()
	return name, nil
}

// Send runs the whole flow synchronously: optimistic append, network
// send, AI append, and title generation when this was the session's
// first message. Used by the plain CLI; the TUI drives the three
// phases itself so the send stays non-blocking.
func (s *Store) Send(ctx context.Context, text string) (Message, error) {
	token, first, err := s.BeginSend(text)
	if err != nil {
		return Message{}, err
	}

	msg, err := s.CompleteSend(ctx, token, text)
	if err != nil {
		return Message{}, err
	}

	if first {
		if _, err := s.GenerateTitle(ctx, token, text); err != nil {
			// Non-blocking: the placeholder title stays.
			log.Printf("title generation failed: %v", err)
		}
	}
	return msg, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// persistActive mirrors the active pointer into the volatile scope.
func (s *Store) persistActive(token string) {
	if token == "" {
		s.storage.ClearSessionToken()
		return
	}
	s.storage.SetSessionToken(token)
}

func newHumanMessage(text string) Message {
	now := time.Now()
	return Message{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Text:      text,
		Sender:    SenderHuman,
		Timestamp: now.Format("15:04"),
	}
}

func fromAPISession(as api.Session) Session {
	return Session{
		Token:     as.Token,
		ShortName: as.ShortName,
		Timestamp: as.Timestamp,
	}
}

func fromAPIMessage(am api.Message) Message {
	return Message{
		ID:        am.ID,
		Text:      am.Text,
		Sender:    am.Sender,
		Timestamp: am.Timestamp,
	}
}
