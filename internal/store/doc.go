// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds chat and message state for adda.
//
// ChatStore is the in-memory source of truth; every mutation is written
// through to the SQLite document store so chats survive restarts.
// Streaming flags are tracked per chat and never persisted.
//
// # Key Types
//
//   - ChatStore: Thread-safe chat/message state with persistence
//   - Chat: An individual or group conversation
//   - Message: One message, with reactions and a streaming flag
//   - Exporter: Writes chat transcripts to disk
//
// # Usage
//
//	chats := store.NewChatStore(db)
//	_ = chats.Hydrate(ctx)
//	chat := chats.GetOrCreateIndividualChat("kavya")
//	chats.AddMessage(chat.ID, store.NewMessage(chat.ID, store.SenderUser, text))
package store
