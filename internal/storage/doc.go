// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local SQLite persistence layer for adda.
//
// All app state (profile, session, chats, messages) is stored as JSON
// documents in a single-file SQLite database, keyed by well-known names.
//
// # Key Types
//
//   - Store: Document store backed by SQLite
//
// # Usage
//
// Open the store and read or write a document:
//
//	db, err := storage.Open(storage.DefaultPath())
//	err = db.PutJSON(ctx, storage.KeyUser, profile)
//	err = db.GetJSON(ctx, storage.KeyUser, &profile)
//
// A missing key returns ErrNotFound:
//
//	if errors.Is(err, storage.ErrNotFound) { ... }
//
// # Storage Location
//
// The database lives at ~/.adda/adda.db by default.
package storage
