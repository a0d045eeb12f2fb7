// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth handles accounts and sessions against the Supabase REST API.
package auth

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jeranaias/adda-tui/internal/storage"
)

// =============================================================================
// USER PROFILE
// =============================================================================

// Profile is the locally persisted user identity. It exists with LoggedIn
// false for offline use; the backend profile row is synced on top when a
// session is active.
type Profile struct {
	UserID             string   `json:"userId,omitempty"`
	Email              string   `json:"email,omitempty"`
	Name               string   `json:"name"`
	FavoriteCharacters []string `json:"favoriteCharacters"`
	Onboarded          bool     `json:"onboarded"`
	LoggedIn           bool     `json:"loggedIn"`
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the signed-in state: the local profile, the backend session,
// and their persistence. The zero profile (no name, not onboarded) drives
// the app into onboarding.
//
// All methods are safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	profile Profile
	session *Session

	client *Client
	db     *storage.Store
}

// NewManager creates a manager over the given auth client and document
// store. Both may be nil/unconfigured for a purely local profile.
func NewManager(client *Client, db *storage.Store) *Manager {
	if client == nil {
		client = NewClient(nil)
	}
	return &Manager{
		client: client,
		db:     db,
		profile: Profile{
			FavoriteCharacters: []string{},
		},
	}
}

// Profile returns a copy of the current profile.
func (m *Manager) Profile() Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

// Session returns the current session, or nil when signed out.
func (m *Manager) Session() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// =============================================================================
// LOCAL PROFILE MUTATIONS
// =============================================================================

// SetName updates the display name used in prompts and chat rendering.
func (m *Manager) SetName(name string) {
	m.mu.Lock()
	m.profile.Name = name
	m.mu.Unlock()
	m.persistProfile()
}

// SetFavoriteCharacters replaces the favorites picked during onboarding.
func (m *Manager) SetFavoriteCharacters(ids []string) {
	next := make([]string, len(ids))
	copy(next, ids)
	m.mu.Lock()
	m.profile.FavoriteCharacters = next
	m.mu.Unlock()
	m.persistProfile()
}

// CompleteOnboarding marks onboarding as done.
func (m *Manager) CompleteOnboarding() {
	m.mu.Lock()
	m.profile.Onboarded = true
	m.mu.Unlock()
	m.persistProfile()
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

// SignUp registers an account. When the backend issues a session right away
// the manager signs in with it; otherwise the caller should prompt for email
// verification.
func (m *Manager) SignUp(ctx context.Context, email, password string) (verified bool, err error) {
	session, _, err := m.client.SignUp(ctx, email, password)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, nil
	}
	m.adopt(session)
	m.syncProfile(ctx)
	return true, nil
}

// SignIn authenticates and pulls the backend profile over the local one.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	session, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	m.adopt(session)
	m.syncProfile(ctx)
	return nil
}

// SignOut revokes the session and clears the signed-in state. The local
// profile (name, favorites) survives for offline use.
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.Lock()
	session := m.session
	m.session = nil
	m.profile.LoggedIn = false
	m.profile.UserID = ""
	m.profile.Email = ""
	m.mu.Unlock()

	if session != nil && m.client.Configured() {
		if err := m.client.SignOut(ctx, session.AccessToken); err != nil {
			log.Printf("auth: sign-out request failed: %v", err)
		}
	}

	m.persistProfile()
	if m.db != nil {
		if err := m.db.Delete(context.Background(), storage.KeySession); err != nil {
			log.Printf("auth: failed to clear session: %v", err)
		}
	}
}

// Hydrate loads the persisted profile and session, refreshing the session
// when the access token has expired. A refresh failure degrades to
// signed-out rather than erroring; the local profile still loads.
func (m *Manager) Hydrate(ctx context.Context) error {
	if m.db == nil {
		return nil
	}

	var profile Profile
	if err := m.db.GetJSON(ctx, storage.KeyUser, &profile); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	} else {
		m.mu.Lock()
		if profile.FavoriteCharacters == nil {
			profile.FavoriteCharacters = []string{}
		}
		m.profile = profile
		m.mu.Unlock()
	}

	var session Session
	if err := m.db.GetJSON(ctx, storage.KeySession, &session); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return nil
	}

	if !session.Expired() {
		m.mu.Lock()
		m.session = &session
		m.profile.LoggedIn = true
		m.mu.Unlock()
		return nil
	}

	if !m.client.Configured() {
		return nil
	}
	fresh, err := m.client.RefreshSession(ctx, session.RefreshToken)
	if err != nil {
		log.Printf("auth: session refresh failed, staying signed out: %v", err)
		m.mu.Lock()
		m.profile.LoggedIn = false
		m.mu.Unlock()
		m.persistProfile()
		return nil
	}
	m.adopt(fresh)
	return nil
}

// =============================================================================
// BACKEND SYNC
// =============================================================================

// syncProfile merges the backend profile row into the local profile, then
// pushes the merged result back. Sync failures are logged, not fatal; the
// app keeps working on local state.
func (m *Manager) syncProfile(ctx context.Context) {
	m.mu.RLock()
	session := m.session
	m.mu.RUnlock()
	if session == nil || !m.client.Configured() {
		return
	}

	row, err := m.client.FetchProfile(ctx, session.AccessToken, session.User.ID)
	if err != nil {
		log.Printf("auth: profile fetch failed: %v", err)
	}

	m.mu.Lock()
	if row != nil {
		if row.Name != "" {
			m.profile.Name = row.Name
		}
		if row.FavoriteCharacters != nil {
			m.profile.FavoriteCharacters = row.FavoriteCharacters
		}
		if row.Onboarded {
			m.profile.Onboarded = true
		}
	}
	push := &ProfileRow{
		ID:                 session.User.ID,
		Email:              session.User.Email,
		Name:               m.profile.Name,
		FavoriteCharacters: m.profile.FavoriteCharacters,
		Onboarded:          m.profile.Onboarded,
	}
	m.mu.Unlock()

	if err := m.client.UpsertProfile(ctx, session.AccessToken, push); err != nil {
		log.Printf("auth: profile upsert failed: %v", err)
	}
	m.persistProfile()
}

// adopt installs a fresh session and persists it.
func (m *Manager) adopt(session *Session) {
	m.mu.Lock()
	m.session = session
	m.profile.LoggedIn = true
	m.profile.UserID = session.User.ID
	m.profile.Email = session.User.Email
	m.mu.Unlock()

	m.persistProfile()
	if m.db != nil {
		if err := m.db.PutJSON(context.Background(), storage.KeySession, session); err != nil {
			log.Printf("auth: failed to persist session: %v", err)
		}
	}
}

func (m *Manager) persistProfile() {
	if m.db == nil {
		return
	}
	m.mu.RLock()
	profile := m.profile
	m.mu.RUnlock()
	if err := m.db.PutJSON(context.Background(), storage.KeyUser, profile); err != nil {
		log.Printf("auth: failed to persist profile: %v", err)
	}
}
