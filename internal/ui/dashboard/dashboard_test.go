// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzizLive1/ultrachat-tui/internal/analytics"
	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/store"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/styles"
)

func newTestDashboard() Model {
	agg := analytics.NewAggregator(store.NewMemStore())
	return New(styles.NewTheme(model.ThemeDark), agg)
}

func TestNewLoadsSeedData(t *testing.T) {
	m := newTestDashboard()

	assert.Equal(t, 1450, m.data.TotalVisits)
	assert.Equal(t, 12, m.LiveUsers())
	require.Len(t, m.data.DailyUsage, 7)
}

func TestDriftStepsByOne(t *testing.T) {
	m := newTestDashboard()
	start := m.LiveUsers()

	m.intN = func(int) int { return 1 } // always up
	m.drift()
	assert.Equal(t, start+1, m.LiveUsers())

	m.intN = func(int) int { return 0 } // always down
	m.drift()
	assert.Equal(t, start, m.LiveUsers())
}

func TestDriftFloorsAtOne(t *testing.T) {
	m := newTestDashboard()
	m.data.LiveUsers = 1
	m.intN = func(int) int { return 0 }

	for i := 0; i < 5; i++ {
		m.drift()
	}
	assert.Equal(t, 1, m.LiveUsers())
}

func TestTickSchedulesNextTick(t *testing.T) {
	m := newTestDashboard()
	m.intN = func(int) int { return 1 }

	m, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, 13, m.LiveUsers())
}

func TestReloadKeepsDriftedLiveCount(t *testing.T) {
	m := newTestDashboard()
	m.intN = func(int) int { return 1 }
	m.drift()
	drifted := m.LiveUsers()

	m.Reload()
	assert.Equal(t, drifted, m.LiveUsers(), "reload keeps the displayed live count stable")
	assert.Equal(t, 1450, m.data.TotalVisits)
}

func TestViewRenders(t *testing.T) {
	m := newTestDashboard()

	view := m.View()
	assert.Contains(t, view, "Analytics Dashboard")
	assert.Contains(t, view, "Total Visits")
	assert.Contains(t, view, "1,450")
	assert.Contains(t, view, "Daily Usage")
	assert.Contains(t, view, "2023-10-01")
	assert.Contains(t, view, "1.20s")
}
