// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selector decides which characters respond to a group message.
//
// Scoring mixes a random spread with bonuses for name drops and trigger
// keywords, so replies feel organic but stay on-topic. @mentions always
// win: a mentioned character responds first, in mention order.
package selector
