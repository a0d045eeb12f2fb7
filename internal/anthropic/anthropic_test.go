// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// STREAM READER TESTS
// =============================================================================

const sampleSSE = `event: message_start
data: {"type":"message_start","message":{"id":"msg_1","model":"claude-sonnet-4-5-20250929","usage":{"input_tokens":12}}}

event: content_block_start
data: {"type":"content_block_start","index":0}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hel"}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"lo "}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"yaar"}}

event: content_block_stop
data: {"type":"content_block_stop","index":0}

event: message_delta
data: {"type":"message_delta","delta":{"stop_reason":"end_turn"},"usage":{"output_tokens":7}}

event: message_stop
data: {"type":"message_stop"}

`

func TestStreamReader_ParsesDeltas(t *testing.T) {
	reader := NewStreamReader(strings.NewReader(sampleSSE))

	var chunks []StreamChunk
	err := reader.Process(context.Background(), func(chunk StreamChunk) {
		chunks = append(chunks, chunk)
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if got := reader.GetAccumulated(); got != "Hello yaar" {
		t.Errorf("accumulated = %q, want %q", got, "Hello yaar")
	}
	if reader.GetModel() != "claude-sonnet-4-5-20250929" {
		t.Errorf("model = %q", reader.GetModel())
	}

	// Three text chunks plus the final done chunk.
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	final := chunks[len(chunks)-1]
	if !final.Done {
		t.Error("final chunk must be marked done")
	}
	if final.StopReason != "end_turn" {
		t.Errorf("stop reason = %q", final.StopReason)
	}
	if final.Usage.OutputTokens != 7 {
		t.Errorf("output tokens = %d", final.Usage.OutputTokens)
	}
	if usage := reader.GetUsage(); usage.InputTokens != 12 {
		t.Errorf("input tokens = %d", usage.InputTokens)
	}
}

func TestStreamReader_ErrorEvent(t *testing.T) {
	sse := `data: {"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}

`
	reader := NewStreamReader(strings.NewReader(sse))

	var final StreamChunk
	err := reader.Process(context.Background(), func(chunk StreamChunk) {
		final = chunk
	})
	if err == nil {
		t.Fatal("expected an error from the error event")
	}
	if !final.Done {
		t.Error("error chunk must be marked done")
	}
	if !IsOverloaded(err) {
		t.Errorf("expected overloaded classification, got %v", err)
	}
}

func TestStreamReader_SkipsMalformedLines(t *testing.T) {
	sse := "data: not json at all\n\n" +
		`data: {"type":"content_block_delta","delta":{"type":"text_delta","text":"ok"}}` + "\n\n" +
		`data: {"type":"message_stop"}` + "\n\n"
	reader := NewStreamReader(strings.NewReader(sse))

	err := reader.Process(context.Background(), func(StreamChunk) {})
	if err != nil {
		t.Fatalf("malformed lines must be skipped, got %v", err)
	}
	if reader.GetAccumulated() != "ok" {
		t.Errorf("accumulated = %q", reader.GetAccumulated())
	}
}

func TestStreamAccumulator(t *testing.T) {
	acc := NewStreamAccumulator()
	acc.Add(StreamChunk{Content: "namaste "})
	acc.Add(StreamChunk{Content: "ji"})
	acc.Add(StreamChunk{Done: true, StopReason: "end_turn"})

	if acc.GetContent() != "namaste ji" {
		t.Errorf("content = %q", acc.GetContent())
	}
	if !acc.IsDone() || acc.GetError() != nil {
		t.Errorf("unexpected state: done=%v err=%v", acc.IsDone(), acc.GetError())
	}
}

// =============================================================================
// CLIENT TESTS
// =============================================================================

func newTestClient(baseURL string) *Client {
	return NewClientWithConfig(&ClientConfig{
		APIKey:            "sk-test",
		BaseURL:           baseURL,
		RequestsPerSecond: 1000, // no pacing in tests
	})
}

func TestMessageStream_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "sk-test" {
			t.Error("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(sampleSSE))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	acc := NewStreamAccumulator()
	err := client.MessageStream(context.Background(), "system", []Message{
		{Role: "user", Content: "hi"},
	}, acc.Add)
	if err != nil {
		t.Fatalf("MessageStream: %v", err)
	}
	if acc.GetContent() != "Hello yaar" {
		t.Errorf("content = %q", acc.GetContent())
	}
}

func TestMessage_NonStreaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"model": "claude-sonnet-4-5-20250929",
			"content": [{"type":"text","text":"haan bhai"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 5, "output_tokens": 3}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Message(context.Background(), "sys", []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if resp.Text() != "haan bhai" {
		t.Errorf("Text() = %q", resp.Text())
	}
}

func TestSetModelParams_AppliesToNextRequest(t *testing.T) {
	var got MessagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","content":[{"type":"text","text":"ok"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.SetModelParams("claude-test-1", 123, 0.5)

	if _, err := client.Message(context.Background(), "sys", []Message{{Role: "user", Content: "hi"}}); err != nil {
		t.Fatalf("Message: %v", err)
	}
	if got.Model != "claude-test-1" || got.MaxTokens != 123 || got.Temperature != 0.5 {
		t.Errorf("request did not pick up new params: %+v", got)
	}

	// Zero values leave the current settings alone.
	client.SetModelParams("", 0, 0)
	if _, err := client.Message(context.Background(), "sys", []Message{{Role: "user", Content: "hi"}}); err != nil {
		t.Fatalf("Message: %v", err)
	}
	if got.Model != "claude-test-1" || got.MaxTokens != 123 || got.Temperature != 0.5 {
		t.Errorf("zero params must not reset settings: %+v", got)
	}
}

func TestSetModelParams_ConcurrentWithStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(sampleSSE))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	// Hammer the params while streams are in flight; the race detector
	// verifies the request builder reads a consistent snapshot.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				client.SetModelParams("claude-test-2", 200+n, 0.7)
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := client.MessageStream(context.Background(), "sys",
				[]Message{{Role: "user", Content: "hi"}}, func(StreamChunk) {})
			if err != nil {
				t.Errorf("MessageStream: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, IsAuth},
		{"forbidden", http.StatusForbidden, `{}`, IsAuth},
		{"rate limited", http.StatusTooManyRequests, `{}`, IsRateLimited},
		{"overloaded", http.StatusServiceUnavailable,
			`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, IsOverloaded},
		{"server error", http.StatusInternalServerError, ``, IsOverloaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.Message(context.Background(), "", []Message{{Role: "user", Content: "x"}})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !tt.check(err) {
				t.Errorf("wrong classification for %d: %v", tt.status, err)
			}
		})
	}
}

func TestMessageStream_ContextCancel(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	err := client.MessageStream(ctx, "", []Message{{Role: "user", Content: "x"}}, func(StreamChunk) {})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

// =============================================================================
// NAME PREFIX STRIPPING
// =============================================================================

func TestStripNamePrefix(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		character string
		want      string
	}{
		{"plain prefix", "Priya: hello ji", "Priya", "hello ji"},
		{"case insensitive", "priya: arre", "Priya", "arre"},
		{"no prefix", "hello ji", "Priya", "hello ji"},
		{"prefix mid-sentence untouched", "maine Priya: bola", "Priya", "maine Priya: bola"},
		{"extra spaces", "Priya:   chai?", "Priya", "chai?"},
		{"different name untouched", "Rohan: kya", "Priya", "Rohan: kya"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripNamePrefix(tt.text, tt.character); got != tt.want {
				t.Errorf("StripNamePrefix(%q, %q) = %q, want %q", tt.text, tt.character, got, tt.want)
			}
		})
	}
}
