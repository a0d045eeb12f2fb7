// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides Supabase-backed accounts and the local profile.
//
// The Client speaks the Supabase GoTrue and PostgREST endpoints (sign-up,
// sign-in, token refresh, profile rows). The Manager layers the local
// profile on top: the app works fully signed-out, and an account only adds
// cross-device sync.
//
// # Key Types
//
//   - Client: Supabase REST client
//   - Manager: Profile state, session lifecycle, persistence
//   - Profile: Local user profile (name, favorites, onboarding)
//
// # Usage
//
//	users := auth.NewManager(auth.NewClient(cfg), db)
//	_ = users.Hydrate(ctx)
//	err := users.SignIn(ctx, email, password)
package auth
