// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package moderation screens outgoing messages for abusive content and
// personal information (phone numbers, Aadhaar, emails) before they
// reach the model.
package moderation
