// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package character defines the adda cast: personas, group dynamics,
// scenario templates, and conversation starters.
//
// The roster is a fixed in-memory catalog. Each character carries a
// system-prompt persona, trigger keywords for group selection, and
// relationship notes used when composing group scenes.
//
// # Key Types
//
//   - Character: A persona with prompt, keywords, and display metadata
//   - Scenario: A pre-built group scene with its cast and setting
//
// # Usage
//
//	c := character.Get("kavya")
//	roster := character.ByIDs(chat.CharacterIDs)
//	dynamics := character.DynamicsForGroup(chat.CharacterIDs)
package character
