// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat orchestrates conversation turns.
//
// A turn starts with a user message and ends when every responding
// character has streamed a reply. The orchestrator moderates input,
// picks responders, composes prompts, streams completions, and emits
// UI events on a channel that closes when the turn is done.
//
// # Key Types
//
//   - Orchestrator: Runs turns against a CompletionProvider
//   - Event: Tagged stream event (message added, token, settled, done)
//
// # Usage
//
//	events, err := orch.Send(ctx, chatID, text)
//	for ev := range events {
//	    apply(ev)
//	}
//
// The caller must drain the channel until it closes.
package chat
