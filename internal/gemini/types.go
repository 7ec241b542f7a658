// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the HTTP client for the hosted Gemini API.
package gemini

import (
	"strings"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Part is a single piece of content. Only text parts are used here.
type Part struct {
	Text string `json:"text"`
}

// Content is one turn of the conversation as the API sees it.
// The API's roles are "user" and "model".
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries the sampling parameters.
type GenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
	TopK        *int     `json:"topK,omitempty"`
	TopP        *float64 `json:"topP,omitempty"`
}

// GenerateContentRequest is the request body for :generateContent and
// :streamGenerateContent.
type GenerateContentRequest struct {
	SystemInstruction *Content          `json:"system_instruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Candidate is one generated reply.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// GenerateContentResponse is the response body for both endpoints; in
// streaming mode each SSE event carries one partial response.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Text concatenates the text parts of the first candidate.
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// apiError is the error envelope returned on non-2xx responses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// Chunk is one fragment of a streamed reply.
//
// A stream is a finite, arrival-ordered, non-restartable sequence of chunks.
// The two terminal signals are distinct: a chunk with Done and a nil Err
// marks normal end of sequence; a chunk with Done and a non-nil Err marks a
// producer failure. No chunk follows a terminal chunk.
type Chunk struct {
	Text string
	Done bool
	Err  error
}

// =============================================================================
// HISTORY MAPPING
// =============================================================================

// contentsFromHistory maps the transcript plus the new prompt onto API
// contents. Assistant turns become role "model".
func contentsFromHistory(history []*model.Message, prompt string) []Content {
	contents := make([]Content, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Role == model.RoleAssistant {
			role = "model"
		}
		contents = append(contents, Content{
			Role:  role,
			Parts: []Part{{Text: msg.Content}},
		})
	}
	contents = append(contents, Content{
		Role:  "user",
		Parts: []Part{{Text: prompt}},
	})
	return contents
}
