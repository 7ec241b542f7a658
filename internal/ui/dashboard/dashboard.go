// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard provides the analytics screen of the ultrachat TUI.
package dashboard

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzizLive1/ultrachat-tui/internal/analytics"
	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/styles"
	"github.com/AzizLive1/ultrachat-tui/internal/util"
)

// liveInterval is how often the live-user count drifts.
const liveInterval = 5 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// tickMsg drives the live-user drift.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(liveInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the analytics screen state.
//
// The displayed live-user count drifts by one step per tick to suggest
// activity; the drift is presentation only and never written back to the
// stored record.
type Model struct {
	theme     *styles.Theme
	analytics *analytics.Aggregator

	data    model.AnalyticsData
	loadErr error

	// intN is swappable for drift tests.
	intN func(int) int

	width  int
	height int
}

// New creates the analytics screen with a snapshot of the current record.
func New(theme *styles.Theme, agg *analytics.Aggregator) Model {
	m := Model{
		theme:     theme,
		analytics: agg,
		intN:      rand.IntN,
	}
	m.Reload()
	return m
}

// Reload re-reads the analytics record.
func (m *Model) Reload() {
	if m.analytics == nil {
		return
	}
	data, err := m.analytics.GetAnalytics()
	if err != nil {
		m.loadErr = err
		return
	}
	// Keep the drifted live count across reloads so it does not jump.
	if m.data.LiveUsers > 0 {
		data.LiveUsers = m.data.LiveUsers
	}
	m.data = data
	m.loadErr = nil
}

// SetTheme swaps the theme after a toggle.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// LiveUsers returns the currently displayed live-user count.
func (m Model) LiveUsers() int {
	return m.data.LiveUsers
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.drift()
		return m, tickCmd()
	}
	return m, nil
}

// drift nudges the live-user count one step up or down, floored at 1.
func (m *Model) drift() {
	step := 1
	if m.intN(2) == 0 {
		step = -1
	}
	m.data.LiveUsers += step
	if m.data.LiveUsers < 1 {
		m.data.LiveUsers = 1
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	t := m.theme

	if m.loadErr != nil {
		return t.StatusError.Render("Failed to load analytics: " + m.loadErr.Error())
	}

	title := t.ChartTitle.Render("Analytics Dashboard")

	cards := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.statCard("Total Visits", util.FormatInt(m.data.TotalVisits)),
			m.liveCard(),
			m.statCard("Unique Users", util.FormatInt(m.data.UniqueUsers)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.statCard("Sessions", util.FormatInt(m.data.TotalSessions)),
			m.statCard("Messages", util.FormatInt(m.data.TotalMessages)),
			m.statCard("Avg Response", util.FormatSeconds(m.data.AvgResponseTime)),
		),
	)

	help := t.ShortcutKey.Render("esc") + t.ShortcutDesc.Render(" back · ") +
		t.ShortcutKey.Render("ctrl+c") + t.ShortcutDesc.Render(" quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		cards,
		"",
		m.renderChart(),
		"",
		help,
	)
}

func (m Model) statCard(label, value string) string {
	t := m.theme
	content := lipgloss.JoinVertical(lipgloss.Left,
		t.StatLabel.Render(label),
		t.StatValue.Render(value),
	)
	return t.StatCard.Width(20).Render(content)
}

func (m Model) liveCard() string {
	t := m.theme
	content := lipgloss.JoinVertical(lipgloss.Left,
		t.StatLabel.Render("Live Users"),
		t.LiveDot.Render("● ")+t.StatValue.Render(util.FormatInt(m.data.LiveUsers)),
	)
	return t.StatCard.Width(20).Render(content)
}

// renderChart draws the daily usage series as horizontal bars.
func (m Model) renderChart() string {
	t := m.theme

	maxCount := 0
	for _, day := range m.data.DailyUsage {
		if day.Count > maxCount {
			maxCount = day.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	barWidth := 30
	if m.width > 0 && m.width-30 < barWidth {
		barWidth = m.width - 30
	}
	if barWidth < 10 {
		barWidth = 10
	}

	var rows []string
	for _, day := range m.data.DailyUsage {
		filled := day.Count * barWidth / maxCount
		bar := t.ChartBarFill.Render(strings.Repeat("█", filled)) +
			t.ChartBarTrack.Render(strings.Repeat("░", barWidth-filled))
		rows = append(rows,
			t.ChartAxis.Render(day.Date)+"  "+bar+"  "+t.StatValue.Render(util.FormatInt(day.Count)),
		)
	}

	chart := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return t.ChartBox.Render(t.ChartTitle.Render("Daily Usage") + "\n\n" + chart)
}
