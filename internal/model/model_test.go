// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u := NewUser("Ada", "Lovelace", "data:image/png;base64,AAAA")

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.Equal(t, "AL", u.Initials())
	assert.NotEmpty(t, u.CreatedAt)

	u2 := NewUser("Ada", "Lovelace", "")
	assert.NotEqual(t, u.ID, u2.ID, "IDs must be opaque and unique")
}

func TestMessageIDsStrictlyIncrease(t *testing.T) {
	a := NewUserMessage("one")
	b := NewAssistantMessage()
	c := NewUserMessage("two")

	ai, err := strconv.ParseInt(a.ID, 10, 64)
	require.NoError(t, err)
	bi, err := strconv.ParseInt(b.ID, 10, 64)
	require.NoError(t, err)
	ci, err := strconv.ParseInt(c.ID, 10, 64)
	require.NoError(t, err)

	assert.Less(t, ai, bi)
	assert.Less(t, bi, ci)
}

func TestAssistantStreamingLifecycle(t *testing.T) {
	m := NewAssistantMessage()
	assert.True(t, m.Streaming)
	assert.True(t, m.IsEmpty())

	m.AppendFragment("Hel")
	m.AppendFragment("lo")
	m.AppendFragment("!")
	assert.Equal(t, "Hello!", m.Content)

	m.FinalizeStream()
	assert.False(t, m.Streaming)

	// Frozen content ignores late fragments.
	m.AppendFragment(" late")
	assert.Equal(t, "Hello!", m.Content)
}

func TestMessageJSONShape(t *testing.T) {
	m := NewUserMessage("hi")
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "id")
	assert.Contains(t, raw, "role")
	assert.Contains(t, raw, "content")
	assert.Contains(t, raw, "timestamp")
	assert.NotContains(t, raw, "Streaming", "streaming state is not persisted")
}

func TestDefaultAnalyticsSeed(t *testing.T) {
	d := DefaultAnalytics()

	assert.Equal(t, 1450, d.TotalVisits)
	assert.Equal(t, 12, d.LiveUsers)
	assert.Equal(t, 342, d.UniqueUsers)
	assert.Equal(t, 890, d.TotalSessions)
	assert.Equal(t, 4520, d.TotalMessages)
	assert.InDelta(t, 1.2, d.AvgResponseTime, 1e-9)

	require.Len(t, d.DailyUsage, 7)
	assert.Equal(t, "2023-10-01", d.DailyUsage[0].Date)
	assert.Equal(t, "2023-10-07", d.DailyUsage[6].Date)
	counts := []int{400, 300, 500, 800, 600, 900, 1100}
	for i, want := range counts {
		assert.Equal(t, want, d.DailyUsage[i].Count)
	}
}

func TestThemeToggleAndParse(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeLight, ParseTheme("garbage"))
}
