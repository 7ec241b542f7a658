// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns the conversation state machine: transcript, send
// lifecycle, streaming assembly and failure handling.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/AzizLive1/ultrachat-tui/internal/gemini"
	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/session"
)

// =============================================================================
// STATES AND EVENTS
// =============================================================================

// State is the send-lifecycle state of the conversation.
//
// The happy path is Idle -> Sending -> Streaming -> Idle. On failure the
// machine passes through Error before settling back to Idle, so an observer
// always sees the failure state even though the conversation immediately
// becomes usable again.
type State int

const (
	StateIdle State = iota
	StateSending
	StateStreaming
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateStreaming:
		return "streaming"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// EventKind identifies what happened to the conversation.
type EventKind int

const (
	// EventUserMessage: the user's message was appended to the transcript.
	EventUserMessage EventKind = iota
	// EventStreamOpened: the first fragment arrived and the reply placeholder
	// was appended to the transcript.
	EventStreamOpened
	// EventFragment: a fragment was appended to the in-flight reply.
	EventFragment
	// EventCompleted: the reply finished; the machine is Idle again.
	EventCompleted
	// EventFailed: the send failed; the transcript carries the error reply.
	EventFailed
)

// Event is one observable change to the conversation. State is the machine
// state after the change. Fragment is set on EventFragment only.
type Event struct {
	Kind     EventKind
	State    State
	Fragment string
	Err      error
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorReplyText is the canned assistant reply appended when a send fails.
// It is its own message; whatever partial content already streamed stays in
// the transcript untouched.
const ErrorReplyText = "⚠️ I encountered an error. Please check your connection or try again later. 🛑"

// Sentinel errors returned by Send when the message is not accepted. Callers
// that want browser-like behavior ignore both.
var (
	ErrEmptyMessage = &sendError{"message is empty"}
	ErrBusy         = &sendError{"a send is already in flight"}
)

type sendError struct{ msg string }

func (e *sendError) Error() string { return e.msg }

// =============================================================================
// COMPLETER
// =============================================================================

// Completer produces model replies. *gemini.Client satisfies it; tests
// substitute fakes.
type Completer interface {
	Complete(ctx context.Context, history []*model.Message, prompt string) (string, error)
	CompleteStream(ctx context.Context, history []*model.Message, prompt string) <-chan gemini.Chunk
}

// Tracker records per-message latency. *analytics.Aggregator satisfies it.
type Tracker interface {
	TrackMessage(responseSeconds float64) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller drives one conversation. It owns the transcript, persists it on
// every change, and reports progress through an event channel.
//
// All methods are safe for concurrent use. Exactly one consumer must drain
// Events while a send is in flight; the channel is buffered but a send will
// block rather than drop events once the buffer fills.
type Controller struct {
	mu       sync.Mutex
	state    State
	messages []*model.Message

	completer Completer
	sessions  *session.Manager
	tracker   Tracker
	events    chan Event

	// now is swappable for latency tests.
	now func() time.Time
}

// NewController creates a controller, restoring any transcript the session
// manager still holds.
func NewController(completer Completer, sessions *session.Manager, tracker Tracker) (*Controller, error) {
	c := &Controller{
		state:     StateIdle,
		completer: completer,
		sessions:  sessions,
		tracker:   tracker,
		events:    make(chan Event, 256),
		now:       time.Now,
	}

	if sessions != nil {
		restored, err := sessions.GetMessages()
		if err != nil {
			return nil, err
		}
		c.messages = restored
	}
	return c, nil
}

// Events returns the channel of conversation events.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// State returns the current send-lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a snapshot of the transcript. The returned messages are
// copies; mutating them does not touch the conversation.
func (c *Controller) Messages() []*model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Reset drops the in-memory transcript. It does not touch stored state;
// clearing storage is the session manager's job.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.state = StateIdle
}

// =============================================================================
// SEND LIFECYCLE
// =============================================================================

// Send submits a user message. Whitespace-only input and sends while another
// is in flight are rejected with a sentinel error and leave no trace in the
// transcript. On acceptance Send returns immediately; progress arrives on
// Events and the transcript is persisted after every change.
func (c *Controller) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateSending
	completer := c.completer

	// History sent to the model is the transcript before this send; the
	// client appends the prompt itself.
	history := c.snapshotLocked()

	c.messages = append(c.messages, model.NewUserMessage(trimmed))
	c.persistLocked()
	c.mu.Unlock()

	c.emit(Event{Kind: EventUserMessage, State: StateSending})

	go c.consumeStream(ctx, completer, history, trimmed, c.now())
	return nil
}

// SetCompleter swaps the reply producer. An in-flight send keeps the stream
// it started with; the next send uses the new completer.
func (c *Controller) SetCompleter(completer Completer) {
	c.mu.Lock()
	c.completer = completer
	c.mu.Unlock()
}

// consumeStream drains one completion stream into the transcript. The reply
// placeholder is created on the first fragment, so the transcript only grows
// an assistant turn once the model has actually produced something.
func (c *Controller) consumeStream(ctx context.Context, completer Completer, history []*model.Message, prompt string, started time.Time) {
	stream := completer.CompleteStream(ctx, history, prompt)

	var reply *model.Message
	for chunk := range stream {
		if chunk.Done {
			if chunk.Err != nil {
				c.fail(reply, chunk.Err)
			} else {
				c.finish(reply, started)
			}
			return
		}
		reply = c.appendFragment(reply, chunk.Text)
	}

	// Producer closed the channel without a terminal chunk; treat as failure.
	c.fail(reply, context.Canceled)
}

func (c *Controller) appendFragment(reply *model.Message, text string) *model.Message {
	c.mu.Lock()
	opened := reply == nil
	if opened {
		reply = model.NewAssistantMessage()
		c.messages = append(c.messages, reply)
		c.state = StateStreaming
	}
	reply.AppendFragment(text)
	c.persistLocked()
	c.mu.Unlock()

	if opened {
		c.emit(Event{Kind: EventStreamOpened, State: StateStreaming})
	}
	c.emit(Event{Kind: EventFragment, State: StateStreaming, Fragment: text})
	return reply
}

func (c *Controller) finish(reply *model.Message, started time.Time) {
	elapsed := c.now().Sub(started).Seconds()

	c.mu.Lock()
	if reply == nil {
		// The stream completed without producing anything; record an empty
		// reply so every user turn still has an assistant turn.
		reply = model.NewAssistantMessage()
		c.messages = append(c.messages, reply)
	}
	reply.FinalizeStream()
	c.state = StateIdle
	c.persistLocked()
	c.mu.Unlock()

	if c.tracker != nil {
		_ = c.tracker.TrackMessage(elapsed)
	}
	c.emit(Event{Kind: EventCompleted, State: StateIdle})
}

// fail freezes whatever streamed and appends the canned error reply as a
// separate message; partial content is never rolled back.
func (c *Controller) fail(reply *model.Message, cause error) {
	c.mu.Lock()
	c.state = StateError
	if reply != nil {
		reply.FinalizeStream()
	}
	c.messages = append(c.messages, model.NewAssistantError(ErrorReplyText))
	c.persistLocked()
	c.mu.Unlock()

	c.emit(Event{Kind: EventFailed, State: StateError, Err: cause})

	// The failure state is observable but transient; the conversation is
	// immediately usable again.
	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
}

// =============================================================================
// INTERNAL
// =============================================================================

// snapshotLocked copies the transcript. Callers hold c.mu.
func (c *Controller) snapshotLocked() []*model.Message {
	out := make([]*model.Message, len(c.messages))
	for i, msg := range c.messages {
		copied := *msg
		out[i] = &copied
	}
	return out
}

// persistLocked saves the transcript. Callers hold c.mu. A storage failure
// must not lose the conversation, so the error is dropped; the in-memory
// transcript stays authoritative.
func (c *Controller) persistLocked() {
	if c.sessions == nil {
		return
	}
	_ = c.sessions.SaveMessages(c.messages)
}

func (c *Controller) emit(event Event) {
	c.events <- event
}
