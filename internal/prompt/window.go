// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt builds the model input for one character turn.
package prompt

// =============================================================================
// ROLE MESSAGES
// =============================================================================

// Role is a chat-completion role. The completion API models exactly two
// conversational roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// RoleMessage is one entry of the bounded context window sent to the model.
type RoleMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// HistoryMessage is the minimal view of a stored message the windower needs.
type HistoryMessage struct {
	SenderID string
	Content  string
}

// DefaultWindowLimit is the number of most recent messages kept in the
// context window. Older context is dropped, not summarized.
const DefaultWindowLimit = 20

// Synthetic entries injected to satisfy the user/assistant alternation
// contract of the completion API.
const (
	conversationStart = "[conversation start]"
	continuePrompt    = "[continue the conversation naturally]"
	greetingFallback  = ": Hi!"
)

// =============================================================================
// WINDOWING
// =============================================================================

// Window converts an ordered message history into a bounded, strictly
// alternating two-role sequence.
//
// Every user message maps to role user with a "{userName}: " prefix. Every
// character message maps to role assistant with a "{name}: " prefix — other
// group members' lines are deliberately collapsed into assistant because the
// API models only two roles. Consecutive same-role entries are merged
// newline-joined. The result always starts and ends with a user entry; an
// empty history yields a single synthetic greeting so the model never sees
// an empty message list.
func Window(history []HistoryMessage, nameByID map[string]string, userName string, limit int) []RoleMessage {
	if limit <= 0 {
		limit = DefaultWindowLimit
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	mapped := make([]RoleMessage, 0, len(history))
	for _, msg := range history {
		if msg.SenderID == "user" {
			mapped = append(mapped, RoleMessage{Role: RoleUser, Content: userName + ": " + msg.Content})
			continue
		}
		name := nameByID[msg.SenderID]
		if name == "" {
			name = msg.SenderID
		}
		mapped = append(mapped, RoleMessage{Role: RoleAssistant, Content: name + ": " + msg.Content})
	}

	// Merge consecutive same-role entries to satisfy strict alternation.
	alternated := make([]RoleMessage, 0, len(mapped))
	for _, msg := range mapped {
		if n := len(alternated); n > 0 && alternated[n-1].Role == msg.Role {
			alternated[n-1].Content += "\n" + msg.Content
			continue
		}
		alternated = append(alternated, msg)
	}

	if len(alternated) == 0 {
		return []RoleMessage{{Role: RoleUser, Content: userName + greetingFallback}}
	}

	if alternated[0].Role == RoleAssistant {
		alternated = append([]RoleMessage{{Role: RoleUser, Content: conversationStart}}, alternated...)
	}
	if alternated[len(alternated)-1].Role == RoleAssistant {
		alternated = append(alternated, RoleMessage{Role: RoleUser, Content: continuePrompt})
	}

	return alternated
}
