// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"sync"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single turn in the conversation transcript.
//
// An assistant message is created empty with Streaming set; its Content is
// append-only while the stream is live and frozen once FinalizeStream is
// called. Messages are never deleted individually - the whole transcript is
// cleared on logout.
type Message struct {
	ID        string    `json:"id"` // derived from creation time (unix millis)
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Streaming marks an assistant message whose content is still arriving.
	// Not persisted: a transcript is only saved between mutations, and a
	// loaded transcript is always final.
	Streaming bool `json:"-"`
}

// Message IDs follow the original scheme of unix-millisecond strings. The
// guard keeps them strictly increasing so two messages created in the same
// millisecond (user turn plus its placeholder) never collide.
var (
	idMu   sync.Mutex
	lastID int64
)

func nextMessageID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	id := t.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}

// NewUserMessage creates a completed user message.
func NewUserMessage(content string) *Message {
	now := time.Now()
	return &Message{
		ID:        nextMessageID(now),
		Role:      RoleUser,
		Content:   content,
		Timestamp: now,
	}
}

// NewAssistantMessage creates an empty streaming placeholder.
func NewAssistantMessage() *Message {
	now := time.Now()
	return &Message{
		ID:        nextMessageID(now),
		Role:      RoleAssistant,
		Timestamp: now,
		Streaming: true,
	}
}

// NewAssistantError creates a completed assistant message carrying an error
// notice.
func NewAssistantError(content string) *Message {
	now := time.Now()
	return &Message{
		ID:        nextMessageID(now),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: now,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// AppendFragment appends streamed text to a live placeholder.
// A finalized message is immutable; appends after FinalizeStream are ignored.
func (m *Message) AppendFragment(fragment string) {
	if m.Streaming {
		m.Content += fragment
	}
}

// FinalizeStream freezes the message content.
func (m *Message) FinalizeStream() {
	m.Streaming = false
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// Preview returns a truncated single-line preview of the content.
func (m *Message) Preview(maxRunes int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxRunes {
		return m.Content
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
