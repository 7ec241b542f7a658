// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sseServer emits each fragment as one data event, in order.
func sseServer(t *testing.T, fragments []string, capture *GenerateContentRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		for _, text := range fragments {
			payload, err := json.Marshal(GenerateContentResponse{
				Candidates: []Candidate{{Content: Content{Role: "model", Parts: []Part{{Text: text}}}}},
			})
			require.NoError(t, err)
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}))
}

func collect(t *testing.T, ch <-chan Chunk) (texts []string, terminal Chunk) {
	t.Helper()
	for chunk := range ch {
		if chunk.Done {
			terminal = chunk
			continue
		}
		texts = append(texts, chunk.Text)
	}
	require.True(t, terminal.Done, "stream must end with a terminal chunk")
	return texts, terminal
}

func TestCompleteStream(t *testing.T) {
	var gotReq GenerateContentRequest
	server := sseServer(t, []string{"Hel", "lo", "!"}, &gotReq)
	defer server.Close()

	client := testClient(server.URL)
	ch := client.CompleteStream(context.Background(), history("earlier", "turn"), "say hello")

	texts, terminal := collect(t, ch)
	assert.NoError(t, terminal.Err)
	assert.Equal(t, []string{"Hel", "lo", "!"}, texts)
	assert.Equal(t, "Hello!", strings.Join(texts, ""))

	// Streaming path sends temperature only.
	require.NotNil(t, gotReq.GenerationConfig)
	require.NotNil(t, gotReq.GenerationConfig.Temperature)
	assert.InDelta(t, 0.7, *gotReq.GenerationConfig.Temperature, 1e-9)
	assert.Nil(t, gotReq.GenerationConfig.TopK)
	assert.Nil(t, gotReq.GenerationConfig.TopP)

	// History plus prompt, same mapping as the single-shot path.
	require.Len(t, gotReq.Contents, 3)
	assert.Equal(t, "model", gotReq.Contents[1].Role)
	assert.Equal(t, "say hello", gotReq.Contents[2].Parts[0].Text)
}

func TestCompleteStreamWithoutKey(t *testing.T) {
	client := NewClientWithConfig(DefaultConfig())

	_, terminal := collect(t, client.CompleteStream(context.Background(), nil, "hi"))
	assert.ErrorIs(t, terminal.Err, ErrNotConfigured)
}

func TestCompleteStreamHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	texts, terminal := collect(t, testClient(server.URL).CompleteStream(context.Background(), nil, "hi"))
	assert.Empty(t, texts)
	assert.True(t, IsAuthError(terminal.Err))
}

func TestCompleteStreamSkipsMalformedEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": comment line\n\n")
		fmt.Fprint(w, "data: {not json}\n\n")
		fmt.Fprint(w, "event: message\n")
		fmt.Fprint(w, `data: {"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"candidates":[]}`+"\n\n")
	}))
	defer server.Close()

	texts, terminal := collect(t, testClient(server.URL).CompleteStream(context.Background(), nil, "hi"))
	assert.NoError(t, terminal.Err)
	assert.Equal(t, []string{"ok"}, texts)
}

func TestCompleteStreamCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, `data: {"candidates":[{"content":{"parts":[{"text":"first"}]}}]}`+"\n\n")
		flusher.Flush()
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	ch := testClient(server.URL).CompleteStream(ctx, nil, "hi")

	first := <-ch
	assert.Equal(t, "first", first.Text)
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case chunk, ok := <-ch:
			if !ok {
				return
			}
			if chunk.Done {
				assert.Error(t, chunk.Err)
			}
		case <-deadline:
			t.Fatal("stream did not terminate after cancellation")
		}
	}
}

func TestSSEReader(t *testing.T) {
	input := ": hello\n" +
		"event: message\n" +
		"data: first\n" +
		"\n" +
		"data: second\n" +
		"\n" +
		"data:third"
	r := NewSSEReader(strings.NewReader(input))

	event, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "first", string(event))

	event, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "second", string(event))

	// Final unterminated line still parses.
	event, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "third", string(event))

	_, err = r.ReadEvent()
	assert.ErrorIs(t, err, io.EOF)
}
