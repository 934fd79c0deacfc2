// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// TYPES
// =============================================================================

// Senders.
const (
	SenderHuman = "human"
	SenderAI    = "ai"
)

// PlaceholderTitle is the display title of a session that has not
// been named yet.
const PlaceholderTitle = "New Chat"

// Session is one conversation. The token is the sole identity; the
// short name is the user-visible title and may be empty.
type Session struct {
	Token     string
	ShortName string
	Timestamp string // display string set at insertion, not sortable
}

// Title returns the short name, or the placeholder for unnamed sessions.
func (s Session) Title() string {
	if s.ShortName != "" {
		return s.ShortName
	}
	return PlaceholderTitle
}

// Message is one chat message. The id is derived from the creation
// time and is only ordering-unique within a session; the timestamp is
// a display string (HH:MM).
type Message struct {
	ID        string
	Text      string
	Sender    string // SenderHuman or SenderAI
	Timestamp string
}

// State is the in-memory projection. Sessions are in insertion order,
// newest first. Messages is the lazy per-token cache: a token absent
// from the map has not been loaded yet; once present it is never
// refetched, only evicted on session delete.
type State struct {
	Sessions []Session
	Active   string
	Messages map[string][]Message
}

// NewState returns an empty state with the given active pointer
// (typically restored from the volatile storage scope).
func NewState(active string) State {
	return State{
		Active:   active,
		Messages: make(map[string][]Message),
	}
}

// =============================================================================
// TRANSITIONS
// =============================================================================
//
// Each transition takes the current state and returns a new one.
// Inputs are never mutated: slices and the cache map are copied before
// any change so concurrent readers of an old snapshot stay valid.

// sessionsLoaded replaces the session collection with the server's
// list. The active pointer survives only if it still references a
// listed session; otherwise it moves to the first (newest) session,
// or clears when the list is empty.
func sessionsLoaded(s State, sessions []Session) State {
	next := clone(s)
	next.Sessions = append([]Session(nil), sessions...)

	if findSession(next.Sessions, next.Active) < 0 {
		if len(next.Sessions) > 0 {
			next.Active = next.Sessions[0].Token
		} else {
			next.Active = ""
		}
	}
	return next
}

// sessionCreated prepends the new session, seeds its message cache
// with an empty list, and makes it active. Prepending is what keeps
// the list newest-first without any timestamp ordering.
func sessionCreated(s State, sess Session) State {
	next := clone(s)
	next.Sessions = append([]Session{sess}, next.Sessions...)
	next.Messages[sess.Token] = []Message{}
	next.Active = sess.Token
	return next
}

// sessionDeleted removes the session and evicts its cache entry. When
// the deleted session was active, the pointer moves to the first
// remaining session, or clears.
func sessionDeleted(s State, token string) State {
	next := clone(s)

	kept := make([]Session, 0, len(next.Sessions))
	for _, sess := range next.Sessions {
		if sess.Token != token {
			kept = append(kept, sess)
		}
	}
	next.Sessions = kept
	delete(next.Messages, token)

	if next.Active == token {
		if len(kept) > 0 {
			next.Active = kept[0].Token
		} else {
			next.Active = ""
		}
	}
	return next
}

// sessionRenamed sets the session's short name in place. Renames
// never reorder the list.
func sessionRenamed(s State, token, name string) State {
	next := clone(s)
	for i := range next.Sessions {
		if next.Sessions[i].Token == token {
			next.Sessions[i].ShortName = name
			break
		}
	}
	return next
}

// activated moves the active pointer.
func activated(s State, token string) State {
	next := clone(s)
	next.Active = token
	return next
}

// messagesLoaded installs a session's fetched history. It never
// overwrites an already-populated entry: by the time a slow fetch
// lands the cache may already hold optimistic appends.
func messagesLoaded(s State, token string, msgs []Message) State {
	if _, ok := s.Messages[token]; ok {
		return clone(s)
	}
	next := clone(s)
	next.Messages[token] = append([]Message(nil), msgs...)
	return next
}

// messageAppended appends one message to the token's cache entry. The
// token is always the one captured when the operation was dispatched.
func messageAppended(s State, token string, msg Message) State {
	next := clone(s)
	existing := next.Messages[token]
	updated := make([]Message, 0, len(existing)+1)
	updated = append(updated, existing...)
	updated = append(updated, msg)
	next.Messages[token] = updated
	return next
}

// =============================================================================
// HELPERS
// =============================================================================

// clone copies the state's containers. Message slices are shared
// between clones; transitions that change one replace it wholesale.
func clone(s State) State {
	next := State{
		Sessions: append([]Session(nil), s.Sessions...),
		Active:   s.Active,
		Messages: make(map[string][]Message, len(s.Messages)),
	}
	for k, v := range s.Messages {
		next.Messages[k] = v
	}
	return next
}

func findSession(sessions []Session, token string) int {
	if token == "" {
		return -1
	}
	for i, s := range sessions {
		if s.Token == token {
			return i
		}
	}
	return -1
}
