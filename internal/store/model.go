// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store manages chat and message state with local persistence.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/adda-tui/internal/util"
)

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatType distinguishes one-on-one chats from group scenes.
type ChatType string

const (
	ChatIndividual ChatType = "individual"
	ChatGroup      ChatType = "group"
)

// SenderUser is the sender id used for the human participant.
const SenderUser = "user"

// previewLen caps the chat-list preview stored on the chat.
const previewLen = 50

// Chat is one conversation thread, individual or group.
type Chat struct {
	ID              string   `json:"id"`
	Type            ChatType `json:"type"`
	CharacterIDs    []string `json:"characterIds"`
	Title           string   `json:"title"`
	LastMessage     string   `json:"lastMessage,omitempty"`
	LastMessageTime int64    `json:"lastMessageTime,omitempty"`
	ScenarioID      string   `json:"scenarioId,omitempty"`
	MutedCharacters []string `json:"mutedCharacters"`
}

// IsMuted reports whether the character is muted in this chat.
func (c *Chat) IsMuted(characterID string) bool {
	for _, id := range c.MutedCharacters {
		if id == characterID {
			return true
		}
	}
	return false
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Reaction is an emoji reaction attached to a message.
type Reaction struct {
	Emoji  string `json:"emoji"`
	UserID string `json:"userId"`
}

// Message is a single message in a chat. SenderID is either SenderUser or a
// character id.
type Message struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chatId"`
	SenderID  string     `json:"senderId"`
	Content   string     `json:"content"`
	Timestamp int64      `json:"timestamp"`
	Reactions []Reaction `json:"reactions"`

	// Streaming state (not persisted)
	IsStreaming bool `json:"-"`
}

// IsUser reports whether the message was sent by the human participant.
func (m *Message) IsUser() bool {
	return m.SenderID == SenderUser
}

// NewMessage creates a message with a generated ID and current timestamp.
func NewMessage(chatID, senderID, content string) *Message {
	return &Message{
		ID:        generateMessageID(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
		Reactions: []Reaction{},
	}
}

// NewStreamingMessage creates an empty character message in streaming state.
// Content is filled in via UpdateMessage as tokens arrive.
func NewStreamingMessage(chatID, senderID string) *Message {
	m := NewMessage(chatID, senderID, "")
	m.IsStreaming = true
	return m
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// NewIndividualChat creates a one-on-one chat with the given character.
func NewIndividualChat(characterID string) *Chat {
	return &Chat{
		ID:              "chat_" + characterID + "_" + randomHex(8),
		Type:            ChatIndividual,
		CharacterIDs:    []string{characterID},
		Title:           characterID,
		MutedCharacters: []string{},
	}
}

// NewGroupChat creates a group scene with the given roster. scenarioID may
// be empty for a custom group.
func NewGroupChat(title string, characterIDs []string, scenarioID string) *Chat {
	ids := make([]string, len(characterIDs))
	copy(ids, characterIDs)
	return &Chat{
		ID:              "group_" + uuid.NewString(),
		Type:            ChatGroup,
		CharacterIDs:    ids,
		Title:           title,
		ScenarioID:      scenarioID,
		MutedCharacters: []string{},
	}
}

// =============================================================================
// ID GENERATION
// =============================================================================

func generateMessageID() string {
	return "msg_" + randomHex(8)
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// preview truncates content for the chat-list preview, rune-safe so
// Devanagari and emoji never get split mid-character.
func preview(content string) string {
	return util.TruncateRunesNoEllipsis(content, previewLen)
}
