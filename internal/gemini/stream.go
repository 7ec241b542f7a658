// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
)

// =============================================================================
// STREAMING COMPLETION
// =============================================================================

// CompleteStream sends the prior history plus a new prompt and returns a
// channel of text fragments in arrival order.
//
// The sequence is finite and non-restartable: it ends with exactly one
// terminal chunk (Done set), carrying Err when the producer failed. The
// channel is closed after the terminal chunk. Consuming the sequence to
// exhaustion and concatenating the Text fields yields the full reply.
//
// There is no timeout on an open stream; cancellation, if wanted, comes from
// ctx. Matching the single-shot path, streaming sends temperature only.
func (c *Client) CompleteStream(ctx context.Context, history []*model.Message, prompt string) <-chan Chunk {
	ch := make(chan Chunk)

	go func() {
		defer close(ch)

		terminal := func(err error) {
			chunk := Chunk{Done: true, Err: err}
			select {
			case ch <- chunk:
			case <-ctx.Done():
			}
		}

		if c.config.APIKey == "" {
			terminal(ErrNotConfigured)
			return
		}
		if err := c.limiter.Wait(ctx); err != nil {
			terminal(&ClientError{Type: ErrTypeConnection, Message: "rate limiter interrupted", Cause: err})
			return
		}

		reqBody := GenerateContentRequest{
			SystemInstruction: &Content{Parts: []Part{{Text: c.config.SystemInstruction}}},
			Contents:          contentsFromHistory(history, prompt),
			GenerationConfig: &GenerationConfig{
				Temperature: &c.config.Temperature,
			},
		}

		body, err := json.Marshal(reqBody)
		if err != nil {
			terminal(&ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err})
			return
		}

		url := c.config.BaseURL + "/models/" + c.config.Model + ":streamGenerateContent?alt=sse"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			terminal(&ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err})
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.config.APIKey)

		// Fresh handle per call, and no client timeout: the stream stays
		// open as long as the producer keeps sending.
		streamClient := &http.Client{}

		resp, err := streamClient.Do(req)
		if err != nil {
			terminal(&ClientError{Type: ErrTypeConnection, Message: "stream request failed", Cause: err})
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			terminal(statusError(resp))
			return
		}

		reader := NewSSEReader(resp.Body)
		for {
			event, err := reader.ReadEvent()
			if err != nil {
				if err == io.EOF {
					// Natural end of sequence.
					terminal(nil)
					return
				}
				terminal(&ClientError{Type: ErrTypeConnection, Message: "stream interrupted", Cause: err})
				return
			}

			var part GenerateContentResponse
			if err := json.Unmarshal(event, &part); err != nil {
				// Skip malformed events rather than killing the stream.
				continue
			}

			text := part.Text()
			if text == "" {
				continue
			}

			select {
			case ch <- Chunk{Text: text}:
			case <-ctx.Done():
				terminal(&ClientError{Type: ErrTypeConnection, Message: "stream cancelled", Cause: ctx.Err()})
				return
			}
		}
	}()

	return ch
}

// =============================================================================
// SSE READER
// =============================================================================

// SSEReader parses Server-Sent Events from a response body. Only data fields
// matter for this API; comment and event-name lines are skipped.
type SSEReader struct {
	reader *bufio.Reader
}

// NewSSEReader creates an SSE reader over r.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{reader: bufio.NewReader(r)}
}

// ReadEvent returns the payload of the next data event, or io.EOF at end of
// stream.
func (s *SSEReader) ReadEvent() ([]byte, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && strings.TrimSpace(line) == "" {
				return nil, io.EOF
			}
			if err != io.EOF {
				return nil, err
			}
			// Fall through to process a final unterminated line.
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if data, ok := strings.CutPrefix(line, "data:"); ok {
			data = strings.TrimSpace(data)
			if data == "" {
				continue
			}
			return []byte(data), nil
		}
		// Other SSE fields (event:, id:, retry:) are ignored.
	}
}
