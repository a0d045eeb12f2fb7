// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt composes system prompts and trims conversation history
// into the API message window.
//
// Individual chats get the character's persona plus addressing rules;
// group chats add the roster and relationship dynamics. Window enforces
// the strict user/assistant alternation the Messages API requires.
package prompt
