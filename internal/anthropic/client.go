// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anthropic provides the HTTP client for the Anthropic Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Anthropic client.
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

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeAuth
	ErrTypeRateLimited
	ErrTypeOverloaded
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrAuth        = &ClientError{Type: ErrTypeAuth, Message: "invalid or missing API key"}
	ErrRateLimited = &ClientError{Type: ErrTypeRateLimited, Message: "rate limited by the API"}
	ErrOverloaded  = &ClientError{Type: ErrTypeOverloaded, Message: "API is overloaded"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeAuth
	}
	return errors.Is(err, ErrAuth)
}

// IsRateLimited checks if an error is a rate-limit error.
func IsRateLimited(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeRateLimited
	}
	return errors.Is(err, ErrRateLimited)
}

// IsOverloaded checks if an error indicates the API is shedding load.
func IsOverloaded(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeOverloaded
	}
	return errors.Is(err, ErrOverloaded)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Anthropic client.
type ClientConfig struct {
	// APIKey authenticates requests (x-api-key header). Required.
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com).
	// Overridable for tests.
	BaseURL string

	// Model to use if none specified per-request.
	Model string

	// MaxTokens per response (default: 300).
	MaxTokens int

	// Temperature for sampling (default: 0.85).
	Temperature float64

	// Timeout for non-streaming requests (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond paces outgoing requests. Group scenes fire several
	// completions back to back; pacing keeps us under the account rate
	// limit. Default: 2, burst 4.
	RequestsPerSecond float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:            apiKey,
		BaseURL:           defaultBaseURL,
		Model:             DefaultModel,
		MaxTokens:         DefaultMaxTokens,
		Temperature:       DefaultTemperature,
		Timeout:           defaultTimeout,
		RequestsPerSecond: 2,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Anthropic Messages API.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := anthropic.NewClient(cfg.APIKey)
//	err := client.MessageStream(ctx, system, msgs, func(chunk anthropic.StreamChunk) {
//	    // render chunk.Content
//	})
type Client struct {
	mu         sync.RWMutex // guards the mutable model params in config
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new client with default configuration.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig("")
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 2
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 4),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// SetModelParams swaps the model parameters used for subsequent requests.
// Safe to call while requests are in flight; zero values leave the current
// setting unchanged.
func (c *Client) SetModelParams(model string, maxTokens int, temperature float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if model != "" {
		c.config.Model = model
	}
	if maxTokens > 0 {
		c.config.MaxTokens = maxTokens
	}
	if temperature > 0 {
		c.config.Temperature = temperature
	}
}

// modelParams snapshots the request parameters under the read lock.
func (c *Client) modelParams() (model string, maxTokens int, temperature float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.Model, c.config.MaxTokens, c.config.Temperature
}

// =============================================================================
// MESSAGE OPERATIONS
// =============================================================================

// Message sends a completion request and returns the full response
// (non-streaming).
func (c *Client) Message(ctx context.Context, system string, messages []Message) (*MessagesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, ErrTimeout
	}

	model, maxTokens, temperature := c.modelParams()
	reqBody := MessagesRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      system,
		Messages:    messages,
	}

	resp, err := c.post(ctx, c.httpClient, &reqBody)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result MessagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// STREAMING
// =============================================================================

// StreamCallback is called for each chunk received during streaming.
type StreamCallback func(chunk StreamChunk)

// MessageStream sends a streaming completion request and calls the callback
// for each chunk. The callback is called synchronously in the order chunks
// arrive. Returns when streaming is complete or an error occurs.
func (c *Client) MessageStream(ctx context.Context, system string, messages []Message, callback StreamCallback) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return ErrTimeout
	}

	model, maxTokens, temperature := c.modelParams()
	reqBody := MessagesRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      system,
		Messages:    messages,
		Stream:      true,
	}

	// No overall timeout on the streaming client; cancellation comes from
	// the context.
	streamClient := &http.Client{}

	resp, err := c.post(ctx, streamClient, &reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	reader := NewStreamReader(resp.Body)
	return reader.Process(ctx, callback)
}

// MessageStreamChan sends a streaming completion request and returns a
// channel of chunks. The channel is closed when streaming completes or
// fails. Errors are delivered as chunks with the Error field set.
func (c *Client) MessageStreamChan(ctx context.Context, system string, messages []Message) <-chan StreamChunk {
	ch := make(chan StreamChunk)

	go func() {
		defer close(ch)

		err := c.MessageStream(ctx, system, messages, func(chunk StreamChunk) {
			select {
			case ch <- chunk:
			case <-ctx.Done():
				return
			}
		})

		if err != nil {
			select {
			case ch <- StreamChunk{Error: err, Done: true}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

func (c *Client) post(ctx context.Context, hc *http.Client, reqBody *MessagesRequest) (*http.Response, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	return resp, nil
}

// checkStatus maps non-2xx responses to typed errors, consuming the body on
// failure.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
		if apiErr.Error.Type == "overloaded_error" {
			return ErrOverloaded
		}
		return &ClientError{Type: ErrTypeInvalidResponse, Message: apiErr.Error.Message}
	}

	if resp.StatusCode >= 500 {
		return ErrOverloaded
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: "request failed: " + resp.Status}
}

// =============================================================================
// OUTPUT CLEANUP
// =============================================================================

// StripNamePrefix removes a leading "Name: " that the model sometimes adds
// despite instructions, then trims whitespace.
func StripNamePrefix(text, name string) string {
	re := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(name) + `:\s*`)
	return strings.TrimSpace(re.ReplaceAllString(text, ""))
}
