// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the key-value stores behind sessions and analytics.
//
// The original application kept everything in two browser stores: a
// long-lived one (profile, analytics, theme) and a tab-lived one (the
// transcript). Here those map onto an on-disk store and a process-lived
// in-memory store. Both are reached through the same Store interface so the
// consumers can be tested against an in-memory fake.
package store

import "sync"

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a string-keyed store of JSON-serialized values.
//
// Get reports (nil, false, nil) for an absent key; a first run always starts
// with every key absent. Values are written whole on every call - there is no
// partial update and no transaction. Access is effectively single-writer
// (one process, one event loop), so a concurrent read-modify-write can drop
// an update; callers that care must serialize on their side.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemStore is a process-lived Store. It backs the transcript (the tab-lived
// store of the original) and doubles as the test fake for the long-lived one.
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

// Get returns the stored value for key, if any.
func (s *MemStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

// Set stores value under key, overwriting any existing value.
func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[key] = cp
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
