// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/adda-tui/internal/storage"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&ClientConfig{BaseURL: baseURL, AnonKey: "anon-test"})
}

// =============================================================================
// CLIENT TESTS
// =============================================================================

func TestSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("grant_type = %q", r.URL.Query().Get("grant_type"))
		}
		if r.Header.Get("apikey") != "anon-test" {
			t.Error("missing apikey header")
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "priya@example.com" {
			t.Errorf("email = %q", body["email"])
		}

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"expires_in":    3600,
			"token_type":    "bearer",
			"user":          map[string]string{"id": "u1", "email": "priya@example.com"},
		})
	}))
	defer server.Close()

	session, err := newTestClient(server.URL).SignIn(context.Background(), "priya@example.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if session.AccessToken != "at-1" || session.RefreshToken != "rt-1" {
		t.Errorf("tokens wrong: %+v", session)
	}
	if session.User.ID != "u1" {
		t.Errorf("user not adopted: %+v", session.User)
	}
	if session.Expired() {
		t.Error("fresh session must not be expired")
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SignIn(context.Background(), "x@y.com", "wrong")
	if !IsCredentials(err) {
		t.Errorf("expected credentials error, got %v", err)
	}
}

func TestSignUp_PendingVerification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No tokens: project requires email confirmation first.
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"id": "u2", "email": "new@example.com"},
		})
	}))
	defer server.Close()

	session, user, err := newTestClient(server.URL).SignUp(context.Background(), "new@example.com", "pw")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if session != nil {
		t.Error("expected nil session until verified")
	}
	if user == nil || user.ID != "u2" {
		t.Errorf("user = %+v", user)
	}
}

func TestRefreshSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "refresh_token" {
			t.Errorf("grant_type = %q", r.URL.Query().Get("grant_type"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-2",
			"refresh_token": "rt-2",
			"expires_in":    3600,
		})
	}))
	defer server.Close()

	session, err := newTestClient(server.URL).RefreshSession(context.Background(), "rt-1")
	if err != nil {
		t.Fatalf("RefreshSession: %v", err)
	}
	if session.AccessToken != "at-2" {
		t.Errorf("AccessToken = %q", session.AccessToken)
	}
	if session.TokenType != "bearer" {
		t.Errorf("TokenType default missing: %q", session.TokenType)
	}
}

func TestNotConfigured(t *testing.T) {
	client := NewClient(nil)
	if client.Configured() {
		t.Error("empty client must not report configured")
	}
	_, err := client.SignIn(context.Background(), "a@b.c", "pw")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/profiles" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer at-1" {
			t.Error("missing bearer token")
		}
		w.Write([]byte(`[{"id":"u1","email":"p@e.com","name":"Priya","favorite_characters":["bunny"],"onboarded":true}]`))
	}))
	defer server.Close()

	row, err := newTestClient(server.URL).FetchProfile(context.Background(), "at-1", "u1")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if row == nil || row.Name != "Priya" || !row.Onboarded {
		t.Errorf("row = %+v", row)
	}
}

func TestFetchProfile_NoRow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	row, err := newTestClient(server.URL).FetchProfile(context.Background(), "at-1", "u1")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if row != nil {
		t.Errorf("expected nil row, got %+v", row)
	}
}

func TestSessionExpired(t *testing.T) {
	past := &Session{ExpiresAt: time.Now().Unix() - 10}
	if !past.Expired() {
		t.Error("past session must report expired")
	}

	// Within the refresh slack window counts as expired.
	soon := &Session{ExpiresAt: time.Now().Unix() + 30}
	if !soon.Expired() {
		t.Error("session expiring within the slack must report expired")
	}

	future := &Session{ExpiresAt: time.Now().Unix() + 3600}
	if future.Expired() {
		t.Error("fresh session must not report expired")
	}
}

// =============================================================================
// MANAGER TESTS
// =============================================================================

func openTestDB(t *testing.T) *storage.Store {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "adda.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestManager_ProfilePersistence(t *testing.T) {
	db := openTestDB(t)

	m := NewManager(nil, db)
	m.SetName("Arjun")
	m.SetFavoriteCharacters([]string{"bunny", "kavya"})
	m.CompleteOnboarding()

	// A second manager over the same database sees the saved profile.
	m2 := NewManager(nil, db)
	if err := m2.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	p := m2.Profile()
	if p.Name != "Arjun" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.FavoriteCharacters) != 2 {
		t.Errorf("FavoriteCharacters = %v", p.FavoriteCharacters)
	}
	if !p.Onboarded {
		t.Error("Onboarded flag lost")
	}
}

func TestManager_HydrateEmpty(t *testing.T) {
	m := NewManager(nil, openTestDB(t))
	if err := m.Hydrate(context.Background()); err != nil {
		t.Errorf("hydrating an empty database must not fail: %v", err)
	}
	if m.Profile().LoggedIn {
		t.Error("fresh profile must be signed out")
	}
}

func TestManager_SignInAndOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "at-1",
				"refresh_token": "rt-1",
				"expires_in":    3600,
				"user":          map[string]string{"id": "u1", "email": "p@e.com"},
			})
		case "/rest/v1/profiles":
			if r.Method == http.MethodGet {
				w.Write([]byte(`[]`))
				return
			}
			w.WriteHeader(http.StatusCreated)
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	db := openTestDB(t)
	m := NewManager(newTestClient(server.URL), db)
	m.SetName("Arjun")

	if err := m.SignIn(context.Background(), "p@e.com", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	p := m.Profile()
	if !p.LoggedIn || p.UserID != "u1" || p.Email != "p@e.com" {
		t.Errorf("profile after sign-in: %+v", p)
	}
	if m.Session() == nil {
		t.Fatal("session not adopted")
	}

	m.SignOut(context.Background())
	p = m.Profile()
	if p.LoggedIn || p.UserID != "" {
		t.Errorf("profile after sign-out: %+v", p)
	}
	if p.Name != "Arjun" {
		t.Error("local name must survive sign-out")
	}
	if m.Session() != nil {
		t.Error("session must clear on sign-out")
	}
}
