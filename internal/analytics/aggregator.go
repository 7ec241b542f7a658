// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics maintains the mocked usage counters shown on the
// dashboard.
package analytics

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/store"
)

// AnalyticsKey is the long-lived store key for the analytics record.
const AnalyticsKey = "ultra_chat_analytics"

// uniqueUsersFloor is the fixed value uniqueUsers is clamped up to on every
// tracked session. Demo scaling, not a real count.
const uniqueUsersFloor = 124

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator owns the single AnalyticsData record.
//
// Every mutator is a read-modify-write of the whole record. A single mutex
// serializes them; goroutines (the chat controller reports latency off the
// UI loop) would otherwise race and drop updates.
type Aggregator struct {
	mu    sync.Mutex
	store store.Store

	// intN is swappable in tests; defaults to math/rand.
	intN func(n int) int
}

// NewAggregator creates an aggregator over the injected long-lived store.
func NewAggregator(s store.Store) *Aggregator {
	return &Aggregator{store: s, intN: rand.IntN}
}

// GetAnalytics returns the current record, or the seed record if nothing is
// stored yet. The seed is returned without being persisted; the first
// mutation writes it.
func (a *Aggregator) GetAnalytics() (model.AnalyticsData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load()
}

// TrackVisit increments the visit counter.
func (a *Aggregator) TrackVisit() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := a.load()
	if err != nil {
		return err
	}
	data.TotalVisits++
	return a.save(data)
}

// TrackSession records the start of a session. userID is accepted for the
// call signature but not stored; uniqueUsers is only clamped to the demo
// floor and liveUsers is overwritten with a placeholder in [5,25).
func (a *Aggregator) TrackSession(userID string) error {
	_ = userID

	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := a.load()
	if err != nil {
		return err
	}
	data.TotalSessions++
	if data.UniqueUsers < uniqueUsersFloor {
		data.UniqueUsers = uniqueUsersFloor
	}
	data.LiveUsers = a.intN(20) + 5
	return a.save(data)
}

// TrackMessage records one completed assistant reply and folds its response
// time into the running mean. The message count must be incremented before
// the mean is recomputed; the formula reads the post-increment count.
func (a *Aggregator) TrackMessage(responseTimeSeconds float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := a.load()
	if err != nil {
		return err
	}
	data.TotalMessages++
	n := float64(data.TotalMessages)
	data.AvgResponseTime = (data.AvgResponseTime*(n-1) + responseTimeSeconds) / n
	return a.save(data)
}

// load reads the record under the lock held by the caller.
func (a *Aggregator) load() (model.AnalyticsData, error) {
	raw, ok, err := a.store.Get(AnalyticsKey)
	if err != nil {
		return model.AnalyticsData{}, err
	}
	if !ok {
		return model.DefaultAnalytics(), nil
	}
	var data model.AnalyticsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.AnalyticsData{}, fmt.Errorf("failed to decode stored analytics: %w", err)
	}
	return data, nil
}

// save writes the record under the lock held by the caller.
func (a *Aggregator) save(data model.AnalyticsData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode analytics: %w", err)
	}
	return a.store.Set(AnalyticsKey, raw)
}
