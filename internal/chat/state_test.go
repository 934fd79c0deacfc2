// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTitle(t *testing.T) {
	assert.Equal(t, "New Chat", Session{Token: "tok-a"}.Title())
	assert.Equal(t, "Ideas", Session{Token: "tok-a", ShortName: "Ideas"}.Title())
}

func TestSessionCreatedPrepends(t *testing.T) {
	s := NewState("")

	s = sessionCreated(s, Session{Token: "tok-1"})
	s = sessionCreated(s, Session{Token: "tok-2"})
	s = sessionCreated(s, Session{Token: "tok-3"})

	require.Len(t, s.Sessions, 3)
	// Newest first, purely by insertion order.
	assert.Equal(t, "tok-3", s.Sessions[0].Token)
	assert.Equal(t, "tok-2", s.Sessions[1].Token)
	assert.Equal(t, "tok-1", s.Sessions[2].Token)

	// The new session is active and its cache is seeded empty.
	assert.Equal(t, "tok-3", s.Active)
	msgs, ok := s.Messages["tok-3"]
	require.True(t, ok, "cache entry not seeded")
	assert.Empty(t, msgs)
}

func TestSessionsLoaded(t *testing.T) {
	loaded := []Session{{Token: "tok-b"}, {Token: "tok-a"}}

	t.Run("no active selects newest", func(t *testing.T) {
		s := sessionsLoaded(NewState(""), loaded)
		assert.Equal(t, "tok-b", s.Active)
	})

	t.Run("restored active survives when listed", func(t *testing.T) {
		s := sessionsLoaded(NewState("tok-a"), loaded)
		assert.Equal(t, "tok-a", s.Active)
	})

	t.Run("stale active reassigned", func(t *testing.T) {
		s := sessionsLoaded(NewState("tok-gone"), loaded)
		assert.Equal(t, "tok-b", s.Active)
	})

	t.Run("empty list clears active", func(t *testing.T) {
		s := sessionsLoaded(NewState("tok-gone"), nil)
		assert.Equal(t, "", s.Active)
		assert.Empty(t, s.Sessions)
	})
}

func TestSessionDeleted(t *testing.T) {
	base := NewState("")
	base = sessionCreated(base, Session{Token: "tok-1"})
	base = sessionCreated(base, Session{Token: "tok-2"})
	base = messageAppended(base, "tok-1", Message{Text: "hi", Sender: SenderHuman})

	t.Run("active reassigns to first remaining", func(t *testing.T) {
		s := activated(base, "tok-1")
		s = sessionDeleted(s, "tok-1")

		require.Len(t, s.Sessions, 1)
		assert.Equal(t, "tok-2", s.Active)
		_, ok := s.Messages["tok-1"]
		assert.False(t, ok, "cache entry not evicted")
	})

	t.Run("non-active leaves pointer alone", func(t *testing.T) {
		s := activated(base, "tok-2")
		s = sessionDeleted(s, "tok-1")
		assert.Equal(t, "tok-2", s.Active)
	})

	t.Run("last session clears pointer", func(t *testing.T) {
		s := sessionDeleted(base, "tok-1")
		s = sessionDeleted(s, "tok-2")
		assert.Equal(t, "", s.Active)
		assert.Empty(t, s.Sessions)
	})
}

func TestSessionRenamedNeverReorders(t *testing.T) {
	s := NewState("")
	s = sessionCreated(s, Session{Token: "tok-1"})
	s = sessionCreated(s, Session{Token: "tok-2"})

	s = sessionRenamed(s, "tok-1", "Renamed")

	require.Len(t, s.Sessions, 2)
	assert.Equal(t, "tok-2", s.Sessions[0].Token)
	assert.Equal(t, "tok-1", s.Sessions[1].Token)
	assert.Equal(t, "Renamed", s.Sessions[1].ShortName)
}

func TestMessageAppendedOrdering(t *testing.T) {
	s := NewState("")
	s = sessionCreated(s, Session{Token: "tok-1"})

	s = messageAppended(s, "tok-1", Message{Text: "Hello", Sender: SenderHuman})
	s = messageAppended(s, "tok-1", Message{Text: "Hi there", Sender: SenderAI})

	msgs := s.Messages["tok-1"]
	require.Len(t, msgs, 2)
	assert.Equal(t, SenderHuman, msgs[0].Sender)
	assert.Equal(t, SenderAI, msgs[1].Sender)
}

func TestMessagesLoadedNeverOverwrites(t *testing.T) {
	s := NewState("")
	s = sessionCreated(s, Session{Token: "tok-1"})
	s = messageAppended(s, "tok-1", Message{Text: "optimistic", Sender: SenderHuman})

	// A slow fetch resolving after optimistic appends must not clobber them.
	s = messagesLoaded(s, "tok-1", []Message{{Text: "stale", Sender: SenderAI}})

	msgs := s.Messages["tok-1"]
	require.Len(t, msgs, 1)
	assert.Equal(t, "optimistic", msgs[0].Text)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	s := NewState("")
	s = sessionCreated(s, Session{Token: "tok-1"})
	s = messageAppended(s, "tok-1", Message{Text: "one"})
	before := s

	_ = messageAppended(s, "tok-1", Message{Text: "two"})
	_ = sessionRenamed(s, "tok-1", "changed")
	_ = sessionDeleted(s, "tok-1")

	require.Len(t, before.Sessions, 1)
	assert.Equal(t, "", before.Sessions[0].ShortName)
	assert.Len(t, before.Messages["tok-1"], 1)
}
