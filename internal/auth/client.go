// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth handles accounts and sessions against the Supabase REST API.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the auth backend.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes auth errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotConfigured
	ErrTypeCredentials
	ErrTypeSessionExpired
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotConfigured  = &ClientError{Type: ErrTypeNotConfigured, Message: "auth backend is not configured"}
	ErrCredentials    = &ClientError{Type: ErrTypeCredentials, Message: "invalid email or password"}
	ErrSessionExpired = &ClientError{Type: ErrTypeSessionExpired, Message: "session expired"}
)

// IsCredentials checks if an error is a bad-credentials error.
func IsCredentials(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeCredentials
	}
	return errors.Is(err, ErrCredentials)
}

// IsSessionExpired checks if an error indicates the session needs a refresh.
func IsSessionExpired(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeSessionExpired
	}
	return errors.Is(err, ErrSessionExpired)
}

// =============================================================================
// TYPES
// =============================================================================

// User is the backend's view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Session holds the tokens for an authenticated user.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
	TokenType    string `json:"tokenType"`
	User         User   `json:"user"`
}

// Expired reports whether the access token is past (or within a minute of)
// its expiry.
func (s *Session) Expired() bool {
	return time.Now().Unix() >= s.ExpiresAt-60
}

// ProfileRow is a row of the profiles table.
type ProfileRow struct {
	ID                 string   `json:"id"`
	Email              string   `json:"email,omitempty"`
	Name               string   `json:"name,omitempty"`
	FavoriteCharacters []string `json:"favorite_characters,omitempty"`
	Onboarded          bool     `json:"onboarded,omitempty"`
}

// tokenResponse is the body of the auth token endpoints.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         *User  `json:"user"`
}

// errorBody covers the several error envelopes the backend uses.
type errorBody struct {
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	ErrorField       string `json:"error"`
	Message          string `json:"message"`
}

func (b *errorBody) text() string {
	switch {
	case b.ErrorDescription != "":
		return b.ErrorDescription
	case b.Msg != "":
		return b.Msg
	case b.Message != "":
		return b.Message
	case b.ErrorField != "":
		return b.ErrorField
	}
	return ""
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration for the auth client.
type ClientConfig struct {
	// BaseURL is the Supabase project URL.
	BaseURL string

	// AnonKey is the public API key sent as the apikey header.
	AnonKey string

	// Timeout for requests (default: 15s).
	Timeout time.Duration
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Supabase auth and data endpoints. A client with empty
// BaseURL or AnonKey is unconfigured; every call returns ErrNotConfigured,
// which the app treats as "offline mode".
//
// The Client is thread-safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates an auth client. config may be nil for an unconfigured
// client.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = &ClientConfig{}
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Configured reports whether the client has backend credentials.
func (c *Client) Configured() bool {
	return c.config.BaseURL != "" && c.config.AnonKey != ""
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// SignUp registers a new account. When the project requires email
// verification, the returned session is nil until the address is confirmed.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, *User, error) {
	body := map[string]string{"email": email, "password": password}

	var resp tokenResponse
	if err := c.authRequest(ctx, http.MethodPost, "/signup", "", body, &resp); err != nil {
		return nil, nil, err
	}

	var session *Session
	if resp.AccessToken != "" && resp.RefreshToken != "" {
		session = toSession(&resp)
	}
	return session, resp.User, nil
}

// ResendVerification re-sends the signup confirmation email.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	body := map[string]string{"type": "signup", "email": email}
	return c.authRequest(ctx, http.MethodPost, "/resend", "", body, nil)
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp tokenResponse
	if err := c.authRequest(ctx, http.MethodPost, "/token?grant_type=password", "", body, &resp); err != nil {
		return nil, err
	}
	return toSession(&resp), nil
}

// RefreshSession exchanges a refresh token for a fresh session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var resp tokenResponse
	if err := c.authRequest(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body, &resp); err != nil {
		return nil, err
	}
	return toSession(&resp), nil
}

// CurrentUser fetches the account behind an access token.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.authRequest(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut revokes the session server-side. Local state cleanup is the
// caller's responsibility.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.authRequest(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

// =============================================================================
// PROFILE OPERATIONS
// =============================================================================

// UpsertProfile creates or merges the user's profile row.
func (c *Client) UpsertProfile(ctx context.Context, accessToken string, profile *ProfileRow) error {
	headers := map[string]string{"Prefer": "resolution=merge-duplicates,return=minimal"}
	return c.restRequest(ctx, http.MethodPost, "/profiles?on_conflict=id", accessToken, headers, profile, nil)
}

// FetchProfile loads the user's profile row, or nil when none exists yet.
func (c *Client) FetchProfile(ctx context.Context, accessToken, userID string) (*ProfileRow, error) {
	path := "/profiles?id=eq." + url.QueryEscape(userID) +
		"&select=id,email,name,favorite_characters,onboarded"

	var rows []ProfileRow
	if err := c.restRequest(ctx, http.MethodGet, path, accessToken, nil, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

func (c *Client) authRequest(ctx context.Context, method, path, accessToken string, body, out any) error {
	return c.do(ctx, method, "/auth/v1"+path, accessToken, nil, body, out)
}

func (c *Client) restRequest(ctx context.Context, method, path, accessToken string, headers map[string]string, body, out any) error {
	return c.do(ctx, method, "/rest/v1"+path, accessToken, headers, body, out)
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, headers map[string]string, body, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("apikey", c.config.AnonKey)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return &ClientError{Type: ErrTypeConnection, Message: "request timed out", Cause: err}
		}
		return &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
		}
	}
	return nil
}

// normalizeError maps the backend's assorted error envelopes onto typed
// errors.
func normalizeError(status int, data []byte) error {
	var body errorBody
	json.Unmarshal(data, &body)
	msg := body.text()

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized:
		if msg == "" {
			return ErrCredentials
		}
		return &ClientError{Type: ErrTypeCredentials, Message: msg}
	case http.StatusForbidden:
		if msg == "" {
			return ErrSessionExpired
		}
		return &ClientError{Type: ErrTypeSessionExpired, Message: msg}
	}

	if msg == "" {
		msg = "auth request failed"
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: msg}
}

func toSession(resp *tokenResponse) *Session {
	expiresAt := resp.ExpiresAt
	if expiresAt == 0 {
		expiresIn := resp.ExpiresIn
		if expiresIn == 0 {
			expiresIn = 3600
		}
		expiresAt = time.Now().Unix() + expiresIn
	}
	tokenType := resp.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	session := &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt,
		TokenType:    tokenType,
	}
	if resp.User != nil {
		session.User = *resp.User
	}
	return session
}
