// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anthropic provides the HTTP client for the Anthropic Messages API.
package anthropic

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message is a single turn in the conversation sent to the API.
// Role is either "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessagesRequest is the request body for POST /v1/messages.
type MessagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ContentBlock is one block of a non-streaming response.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage reports token accounting for a request.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MessagesResponse is the body of a non-streaming /v1/messages response.
type MessagesResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// Text returns the concatenated text blocks of the response.
func (r *MessagesResponse) Text() string {
	var out string
	for _, b := range r.Content {
		if b.Type == "text" {
			out += b.Text
		}
	}
	return out
}

// apiError is the error envelope the API returns on non-2xx status.
type apiError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// STREAM EVENT TYPES
// =============================================================================

// StreamChunk is a single unit delivered during streaming.
// Content carries the text delta for content_block_delta events; it is empty
// for bookkeeping events. Done is set once, on message_stop or failure.
type StreamChunk struct {
	Content    string
	Done       bool
	StopReason string
	Model      string
	Usage      Usage
	Error      error
}

// streamEvent mirrors the SSE data payloads we care about. The API emits
// message_start, content_block_start, content_block_delta, content_block_stop,
// message_delta, message_stop, ping and error events; everything else is
// ignored.
type streamEvent struct {
	Type    string `json:"type"`
	Message struct {
		ID    string `json:"id"`
		Model string `json:"model"`
		Usage Usage  `json:"usage"`
	} `json:"message"`
	Delta struct {
		Type       string `json:"type"`
		Text       string `json:"text"`
		StopReason string `json:"stop_reason"`
	} `json:"delta"`
	Usage Usage `json:"usage"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultModel is the model every persona speaks through.
	DefaultModel = "claude-sonnet-4-5-20250929"

	// DefaultMaxTokens keeps replies chat-length.
	DefaultMaxTokens = 300

	// DefaultTemperature adds enough variance for personality without
	// losing coherence.
	DefaultTemperature = 0.85

	// apiVersion is the required anthropic-version header value.
	apiVersion = "2023-06-01"

	defaultBaseURL       = "https://api.anthropic.com"
	defaultTimeout       = 30 * time.Second
	defaultStreamTimeout = 10 * time.Second
)
