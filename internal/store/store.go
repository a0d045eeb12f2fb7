// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store manages chat and message state with local persistence.
package store

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/jeranaias/adda-tui/internal/storage"
)

// =============================================================================
// CHAT STORE
// =============================================================================

// ChatStore holds all chats and their messages in memory and writes them
// through to the document store after every mutation. Persistence failures
// are logged, never surfaced; the in-memory state is the source of truth for
// the running session.
//
// All methods are safe for concurrent use.
type ChatStore struct {
	mu        sync.RWMutex
	chats     map[string]*Chat
	messages  map[string][]*Message
	streaming map[string]bool

	// db is optional; a nil db gives a purely in-memory store (tests).
	db *storage.Store
}

// NewChatStore creates an empty chat store backed by db. db may be nil.
func NewChatStore(db *storage.Store) *ChatStore {
	return &ChatStore{
		chats:     make(map[string]*Chat),
		messages:  make(map[string][]*Message),
		streaming: make(map[string]bool),
		db:        db,
	}
}

// =============================================================================
// CHAT CRUD
// =============================================================================

// CreateChat registers a new chat with an empty message list.
func (s *ChatStore) CreateChat(chat *Chat) {
	s.mu.Lock()
	s.chats[chat.ID] = chat
	s.messages[chat.ID] = []*Message{}
	s.mu.Unlock()
	s.persist()
}

// GetChat returns the chat with the given id, or nil.
func (s *ChatStore) GetChat(id string) *Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chats[id]
}

// GetOrCreateIndividualChat returns the existing one-on-one chat with the
// character, creating it if none exists. At most one individual chat exists
// per character.
func (s *ChatStore) GetOrCreateIndividualChat(characterID string) *Chat {
	s.mu.Lock()
	for _, c := range s.chats {
		if c.Type == ChatIndividual && len(c.CharacterIDs) > 0 && c.CharacterIDs[0] == characterID {
			s.mu.Unlock()
			return c
		}
	}
	chat := NewIndividualChat(characterID)
	s.chats[chat.ID] = chat
	s.messages[chat.ID] = []*Message{}
	s.mu.Unlock()
	s.persist()
	return chat
}

// UpdateTitle sets the chat's display title.
func (s *ChatStore) UpdateTitle(chatID, title string) {
	s.mu.Lock()
	if c, ok := s.chats[chatID]; ok {
		c.Title = title
	}
	s.mu.Unlock()
	s.persist()
}

// SortedChats returns all chats newest-activity-first. Chats that have never
// had a message sort last.
func (s *ChatStore) SortedChats() []*Chat {
	s.mu.RLock()
	out := make([]*Chat, 0, len(s.chats))
	for _, c := range s.chats {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTime > out[j].LastMessageTime
	})
	return out
}

// =============================================================================
// MESSAGES
// =============================================================================

// AddMessage appends a message to the chat and refreshes the chat's preview.
func (s *ChatStore) AddMessage(chatID string, msg *Message) {
	s.mu.Lock()
	s.messages[chatID] = append(s.messages[chatID], msg)
	if c, ok := s.chats[chatID]; ok {
		c.LastMessage = preview(msg.Content)
		c.LastMessageTime = msg.Timestamp
	}
	s.mu.Unlock()
	s.persist()
}

// UpdateMessage replaces the content (and streaming flag) of an existing
// message. The chat preview is refreshed only when the updated message is
// still the last one, so an edit to an older message never clobbers a newer
// preview.
func (s *ChatStore) UpdateMessage(chatID, messageID, content string, isStreaming bool) {
	s.mu.Lock()
	msgs := s.messages[chatID]
	for _, m := range msgs {
		if m.ID == messageID {
			m.Content = content
			m.IsStreaming = isStreaming
			break
		}
	}
	if len(msgs) > 0 && msgs[len(msgs)-1].ID == messageID {
		if c, ok := s.chats[chatID]; ok {
			last := msgs[len(msgs)-1]
			c.LastMessage = preview(last.Content)
			c.LastMessageTime = last.Timestamp
		}
	}
	s.mu.Unlock()
	s.persist()
}

// Messages returns a copy of the chat's message slice.
func (s *ChatStore) Messages(chatID string) []*Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[chatID]
	out := make([]*Message, len(msgs))
	copy(out, msgs)
	return out
}

// AddReaction appends an emoji reaction from the user to a message.
// Duplicate reactions are allowed.
func (s *ChatStore) AddReaction(chatID, messageID, emoji string) {
	s.mu.Lock()
	for _, m := range s.messages[chatID] {
		if m.ID == messageID {
			m.Reactions = append(m.Reactions, Reaction{Emoji: emoji, UserID: SenderUser})
			break
		}
	}
	s.mu.Unlock()
	s.persist()
}

// RemoveLastAIMessage removes the chat's last message when it was sent by a
// character, returning the removed message. If the last message is the
// user's (or the chat is empty) nothing is removed: regeneration only ever
// replaces a reply the user is currently looking at, not one buried in
// history. The chat preview is recomputed from the new tail.
func (s *ChatStore) RemoveLastAIMessage(chatID string) *Message {
	s.mu.Lock()
	msgs := s.messages[chatID]
	if len(msgs) == 0 {
		s.mu.Unlock()
		return nil
	}
	last := msgs[len(msgs)-1]
	if last.IsUser() {
		s.mu.Unlock()
		return nil
	}

	msgs = msgs[:len(msgs)-1]
	s.messages[chatID] = msgs
	if c, ok := s.chats[chatID]; ok {
		if len(msgs) > 0 {
			tail := msgs[len(msgs)-1]
			c.LastMessage = preview(tail.Content)
			c.LastMessageTime = tail.Timestamp
		} else {
			c.LastMessage = ""
			c.LastMessageTime = 0
		}
	}
	s.mu.Unlock()
	s.persist()
	return last
}

// =============================================================================
// STREAMING STATE
// =============================================================================

// SetStreaming marks a chat as having an in-flight completion. Streaming
// state is tracked per chat so activity in one chat never blocks sending in
// another.
func (s *ChatStore) SetStreaming(chatID string, streaming bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if streaming {
		s.streaming[chatID] = true
	} else {
		delete(s.streaming, chatID)
	}
}

// IsStreaming reports whether the chat has an in-flight completion.
func (s *ChatStore) IsStreaming(chatID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streaming[chatID]
}

// ClaimStreaming atomically marks the chat as streaming. It returns false
// when the chat already has an in-flight completion, so concurrent sends
// cannot both claim the same chat.
func (s *ChatStore) ClaimStreaming(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streaming[chatID] {
		return false
	}
	s.streaming[chatID] = true
	return true
}

// =============================================================================
// MUTING
// =============================================================================

// MuteCharacter excludes a character from responding in the chat.
func (s *ChatStore) MuteCharacter(chatID, characterID string) {
	s.mu.Lock()
	if c, ok := s.chats[chatID]; ok && !c.IsMuted(characterID) {
		c.MutedCharacters = append(c.MutedCharacters, characterID)
	}
	s.mu.Unlock()
	s.persist()
}

// UnmuteCharacter lets a muted character respond again.
func (s *ChatStore) UnmuteCharacter(chatID, characterID string) {
	s.mu.Lock()
	if c, ok := s.chats[chatID]; ok {
		next := c.MutedCharacters[:0]
		for _, id := range c.MutedCharacters {
			if id != characterID {
				next = append(next, id)
			}
		}
		c.MutedCharacters = next
	}
	s.mu.Unlock()
	s.persist()
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// Hydrate loads chats and messages from the document store. Missing
// documents are not an error (first run). Streaming flags are never
// persisted, so hydrated messages always start settled.
func (s *ChatStore) Hydrate(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	var chats map[string]*Chat
	if err := s.db.GetJSON(ctx, storage.KeyChats, &chats); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	var messages map[string][]*Message
	if err := s.db.GetJSON(ctx, storage.KeyMessages, &messages); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if chats != nil {
		s.chats = chats
	}
	if messages != nil {
		for _, msgs := range messages {
			for _, m := range msgs {
				m.IsStreaming = false
			}
		}
		s.messages = messages
	}
	// Chats hydrated without a message document still need a slice.
	for id := range s.chats {
		if _, ok := s.messages[id]; !ok {
			s.messages[id] = []*Message{}
		}
	}
	return nil
}

// persist writes the full chat state through to the document store.
// Failures are logged and swallowed.
func (s *ChatStore) persist() {
	if s.db == nil {
		return
	}

	// Hold the read lock through marshaling so a concurrent mutation can't
	// tear the snapshot.
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	if err := s.db.PutJSON(ctx, storage.KeyChats, s.chats); err != nil {
		log.Printf("store: failed to persist chats: %v", err)
	}
	if err := s.db.PutJSON(ctx, storage.KeyMessages, s.messages); err != nil {
		log.Printf("store: failed to persist messages: %v", err)
	}
}
