// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the user profile, theme preference and the
// in-progress conversation transcript.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/store"
)

// =============================================================================
// STORAGE KEYS
// =============================================================================

// Keys in the two stores. The user and theme live in the long-lived store;
// the transcript lives in the process-lived one and dies with it.
const (
	UserKey     = "ultra_chat_user"
	MessagesKey = "ultra_chat_memory"
	ThemeKey    = "theme"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager reads and writes the User record and the Message transcript.
//
// No shape validation is done on stored values: a corrupted value surfaces as
// a deserialization error. The whole transcript is serialized on every save -
// there is no incremental diffing.
type Manager struct {
	longLived  store.Store // user profile, theme
	transcript store.Store // message list, process-lived
}

// NewManager creates a session manager over the two injected stores.
func NewManager(longLived, transcript store.Store) *Manager {
	return &Manager{longLived: longLived, transcript: transcript}
}

// SetUser persists the user, overwriting any existing value.
func (m *Manager) SetUser(u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return m.longLived.Set(UserKey, data)
}

// GetUser returns the persisted user, or nil if none exists.
func (m *Manager) GetUser() (*model.User, error) {
	data, ok, err := m.longLived.Get(UserKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to decode stored user: %w", err)
	}
	return &u, nil
}

// SaveMessages serializes the full transcript.
func (m *Manager) SaveMessages(messages []*model.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	return m.transcript.Set(MessagesKey, data)
}

// GetMessages returns the persisted transcript, or an empty list if none
// exists.
func (m *Manager) GetMessages() ([]*model.Message, error) {
	data, ok, err := m.transcript.Get(MessagesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*model.Message{}, nil
	}
	var messages []*model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode stored transcript: %w", err)
	}
	if messages == nil {
		messages = []*model.Message{}
	}
	return messages, nil
}

// ClearAll removes the user and the transcript. Idempotent. The analytics
// record and the theme preference are left untouched.
func (m *Manager) ClearAll() error {
	if err := m.longLived.Delete(UserKey); err != nil {
		return err
	}
	return m.transcript.Delete(MessagesKey)
}

// SetTheme persists the theme preference.
func (m *Manager) SetTheme(t model.Theme) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return m.longLived.Set(ThemeKey, data)
}

// GetTheme returns the persisted theme preference. ok is false when no
// preference has been saved yet.
func (m *Manager) GetTheme() (theme model.Theme, ok bool, err error) {
	data, ok, err := m.longLived.Get(ThemeKey)
	if err != nil || !ok {
		return model.ThemeLight, false, err
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return model.ThemeLight, false, fmt.Errorf("failed to decode stored theme: %w", err)
	}
	return model.ParseTheme(s), true, nil
}
