// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea terminal interface: onboarding,
// the chat list, character and scenario pickers, and the chat view with
// live streaming.
package ui
