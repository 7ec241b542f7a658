// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analytics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/store"
)

func TestGetAnalyticsSeedsDefaults(t *testing.T) {
	a := NewAggregator(store.NewMemStore())

	data, err := a.GetAnalytics()
	require.NoError(t, err)

	assert.Equal(t, model.DefaultAnalytics(), data)
}

func TestSeedNotPersistedByRead(t *testing.T) {
	s := store.NewMemStore()
	a := NewAggregator(s)

	_, err := a.GetAnalytics()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len(), "a plain read writes nothing")

	require.NoError(t, a.TrackVisit())
	assert.Equal(t, 1, s.Len(), "first mutation persists the record")
}

func TestTrackVisit(t *testing.T) {
	a := NewAggregator(store.NewMemStore())

	require.NoError(t, a.TrackVisit())
	require.NoError(t, a.TrackVisit())

	data, err := a.GetAnalytics()
	require.NoError(t, err)
	assert.Equal(t, 1452, data.TotalVisits)
}

func TestTrackSession(t *testing.T) {
	a := NewAggregator(store.NewMemStore())
	a.intN = func(n int) int { return 7 } // deterministic placeholder

	require.NoError(t, a.TrackSession("user-1"))

	data, err := a.GetAnalytics()
	require.NoError(t, err)
	assert.Equal(t, 891, data.TotalSessions)
	assert.Equal(t, 12, data.LiveUsers, "liveUsers overwritten with intN(20)+5")
	assert.Equal(t, 342, data.UniqueUsers, "already above the floor, unchanged")
}

func TestTrackSessionClampsUniqueUsersUpward(t *testing.T) {
	s := store.NewMemStore()
	a := NewAggregator(s)
	a.intN = func(n int) int { return 0 }

	// Store a record below the floor.
	low := model.DefaultAnalytics()
	low.UniqueUsers = 10
	require.NoError(t, a.save(low))

	require.NoError(t, a.TrackSession("user-1"))

	data, err := a.GetAnalytics()
	require.NoError(t, err)
	assert.Equal(t, 124, data.UniqueUsers)
	assert.Equal(t, 5, data.LiveUsers)
}

func TestTrackSessionLiveUsersRange(t *testing.T) {
	a := NewAggregator(store.NewMemStore())

	for i := 0; i < 50; i++ {
		require.NoError(t, a.TrackSession("user-1"))
		data, err := a.GetAnalytics()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, data.LiveUsers, 5)
		assert.Less(t, data.LiveUsers, 25)
	}
}

// TestTrackMessageRunningMean checks the update ordering: the count is
// incremented before the mean is recomputed, so the result is the true
// arithmetic mean over all samples.
func TestTrackMessageRunningMean(t *testing.T) {
	s := store.NewMemStore()
	a := NewAggregator(s)

	// Start from a zeroed record to make the mean easy to state.
	require.NoError(t, a.save(model.AnalyticsData{}))

	samples := []float64{0.5, 1.5, 2.0, 0.25, 3.75}
	var sum float64
	for i, sample := range samples {
		require.NoError(t, a.TrackMessage(sample))
		sum += sample

		data, err := a.GetAnalytics()
		require.NoError(t, err)
		assert.Equal(t, i+1, data.TotalMessages)
		assert.InDelta(t, sum/float64(i+1), data.AvgResponseTime, 1e-9)
	}
}

func TestTrackMessageFromSeed(t *testing.T) {
	a := NewAggregator(store.NewMemStore())

	require.NoError(t, a.TrackMessage(2.4))

	data, err := a.GetAnalytics()
	require.NoError(t, err)
	assert.Equal(t, 4521, data.TotalMessages)
	want := (1.2*4520 + 2.4) / 4521
	assert.InDelta(t, want, data.AvgResponseTime, 1e-9)
}

func TestMutatorsDoNotDropUpdates(t *testing.T) {
	a := NewAggregator(store.NewMemStore())
	require.NoError(t, a.save(model.AnalyticsData{}))

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = a.TrackMessage(1.0)
		}()
	}
	wg.Wait()

	data, err := a.GetAnalytics()
	require.NoError(t, err)
	assert.Equal(t, n, data.TotalMessages)
	assert.InDelta(t, 1.0, data.AvgResponseTime, 1e-9)
}

func TestCorruptedRecordSurfacesError(t *testing.T) {
	s := store.NewMemStore()
	require.NoError(t, s.Set(AnalyticsKey, []byte("{broken")))

	a := NewAggregator(s)
	_, err := a.GetAnalytics()
	assert.Error(t, err)
}
