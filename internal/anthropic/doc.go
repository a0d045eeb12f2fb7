// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anthropic provides a client for the Anthropic Messages API.
//
// This package handles streaming and non-streaming completions, SSE
// parsing, rate limiting, and typed error classification.
//
// # Key Types
//
//   - Client: Main API client with rate limiting
//   - StreamChunk: Incremental piece of a streamed reply
//   - ClientError: Typed error with classification helpers
//
// # Usage
//
// Create a client and stream a reply:
//
//	client := anthropic.NewClient(cfg.APIKey)
//	err := client.MessageStream(ctx, system, msgs, func(chunk anthropic.StreamChunk) {
//	    render(chunk.Content)
//	})
//
// Check error types:
//
//	if anthropic.IsRateLimited(err) { backoff() }
//	if anthropic.IsAuth(err) { promptForKey() }
//
// # Streaming
//
// Streaming uses a dedicated HTTP client without a global timeout;
// cancellation is handled via context and a per-read deadline.
package anthropic
