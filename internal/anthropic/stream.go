// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anthropic provides the HTTP client for the Anthropic Messages API.
package anthropic

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// =============================================================================
// SSE STREAM READER
// =============================================================================

// StreamReader parses the server-sent-event stream of a /v1/messages
// response into StreamChunks.
type StreamReader struct {
	reader *bufio.Reader
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	accumulator strings.Builder
	model       string
	usage       Usage
	stopReason  string
}

// NewStreamReader creates a new stream reader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader: bufio.NewReader(r),
	}
}

var dataPrefix = []byte("data:")

// Process reads the stream and calls the callback for each chunk.
// Blocks until the stream is complete or the context is cancelled.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			chunk, err := s.readChunk()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}

			if chunk != nil {
				callback(*chunk)
				if chunk.Done {
					return chunk.Error
				}
			}
		}
	}
}

// readChunk reads SSE lines until it produces a chunk worth delivering.
// Returns (nil, nil) for lines that carry no chunk (event names, pings,
// bookkeeping events).
func (s *StreamReader) readChunk() (*StreamChunk, error) {
	line, err := s.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(bytes.TrimSpace(line)) == 0 {
			return nil, io.EOF
		}
		if len(line) == 0 {
			return nil, err
		}
	}

	line = bytes.TrimSpace(line)

	// Only data lines matter; "event:" lines duplicate the type field
	// inside the payload.
	if !bytes.HasPrefix(line, dataPrefix) {
		return nil, nil
	}
	payload := bytes.TrimSpace(bytes.TrimPrefix(line, dataPrefix))
	if len(payload) == 0 {
		return nil, nil
	}

	var event streamEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		// Skip malformed lines
		return nil, nil
	}

	switch event.Type {
	case "message_start":
		s.model = event.Message.Model
		s.usage.InputTokens = event.Message.Usage.InputTokens
		return nil, nil

	case "content_block_delta":
		if event.Delta.Type != "text_delta" || event.Delta.Text == "" {
			return nil, nil
		}
		s.accumulator.WriteString(event.Delta.Text)
		return &StreamChunk{Content: event.Delta.Text, Model: s.model}, nil

	case "message_delta":
		if event.Delta.StopReason != "" {
			s.stopReason = event.Delta.StopReason
		}
		if event.Usage.OutputTokens > 0 {
			s.usage.OutputTokens = event.Usage.OutputTokens
		}
		return nil, nil

	case "message_stop":
		return &StreamChunk{
			Done:       true,
			Model:      s.model,
			StopReason: s.stopReason,
			Usage:      s.usage,
		}, nil

	case "error":
		return &StreamChunk{
			Done: true,
			Error: &ClientError{
				Type:    errorTypeFor(event.Error.Type),
				Message: event.Error.Message,
			},
		}, nil

	default:
		// ping, content_block_start, content_block_stop
		return nil, nil
	}
}

// GetAccumulated returns all accumulated text.
func (s *StreamReader) GetAccumulated() string {
	return s.accumulator.String()
}

// GetModel returns the model name from the stream.
func (s *StreamReader) GetModel() string {
	return s.model
}

// GetUsage returns the token usage reported by the stream.
func (s *StreamReader) GetUsage() Usage {
	return s.usage
}

func errorTypeFor(apiType string) ErrorType {
	switch apiType {
	case "overloaded_error":
		return ErrTypeOverloaded
	case "rate_limit_error":
		return ErrTypeRateLimited
	case "authentication_error", "permission_error":
		return ErrTypeAuth
	default:
		return ErrTypeInvalidResponse
	}
}

// =============================================================================
// STREAM ACCUMULATOR
// =============================================================================

// StreamAccumulator collects streaming chunks into the final message text.
type StreamAccumulator struct {
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	content    strings.Builder
	Done       bool
	Error      error
	StopReason string
	Usage      Usage
}

// NewStreamAccumulator creates a new accumulator.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{}
}

// Add processes a new chunk.
func (a *StreamAccumulator) Add(chunk StreamChunk) {
	if chunk.Error != nil {
		a.Error = chunk.Error
		a.Done = true
		return
	}

	a.content.WriteString(chunk.Content)

	if chunk.Done {
		a.Done = true
		a.StopReason = chunk.StopReason
		a.Usage = chunk.Usage
	}
}

// GetContent returns the accumulated text.
func (a *StreamAccumulator) GetContent() string {
	return a.content.String()
}

// IsDone returns whether streaming is complete.
func (a *StreamAccumulator) IsDone() bool {
	return a.Done
}

// GetError returns any error that occurred.
func (a *StreamAccumulator) GetError() error {
	return a.Error
}
