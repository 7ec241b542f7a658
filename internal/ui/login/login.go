// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the profile creation screen shown before the chat.
package login

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzizLive1/ultrachat-tui/internal/avatar"
	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/styles"
)

// SimulatedDelay is the artificial pause between submitting the form and
// entering the chat, mimicking a round trip to an auth service.
const SimulatedDelay = 1500 * time.Millisecond

// Field indices.
const (
	fieldFirstName = iota
	fieldLastName
	fieldAvatarPath
	fieldCount
)

// =============================================================================
// MESSAGES
// =============================================================================

// DoneMsg reports a completed login with the created user profile.
type DoneMsg struct {
	User *model.User
}

// delayElapsedMsg fires when the simulated auth delay finishes.
type delayElapsedMsg struct {
	user *model.User
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the login screen state.
type Model struct {
	theme  *styles.Theme
	inputs [fieldCount]textinput.Model
	focus  int

	spin       spinner.Model
	submitting bool
	errMsg     string

	width  int
	height int
}

// New creates the login screen.
func New(theme *styles.Theme) Model {
	m := Model{theme: theme}

	first := textinput.New()
	first.Placeholder = "First name"
	first.CharLimit = 64
	first.Focus()
	m.inputs[fieldFirstName] = first

	last := textinput.New()
	last.Placeholder = "Last name"
	last.CharLimit = 64
	m.inputs[fieldLastName] = last

	avatarPath := textinput.New()
	avatarPath.Placeholder = "Avatar image path (optional)"
	avatarPath.CharLimit = 256
	m.inputs[fieldAvatarPath] = avatarPath

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spin.Style = theme.Spinner

	return m
}

// SetTheme swaps the theme after a toggle.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spin.Style = theme.Spinner
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case delayElapsedMsg:
		user := msg.user
		return m, func() tea.Msg { return DoneMsg{User: user} }

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.submitting {
			// Form is frozen during the simulated round trip.
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case tea.KeyEnter:
			if m.focus < fieldCount-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// submit validates the form and starts the simulated auth delay.
func (m Model) submit() (Model, tea.Cmd) {
	firstName := strings.TrimSpace(m.inputs[fieldFirstName].Value())
	lastName := strings.TrimSpace(m.inputs[fieldLastName].Value())

	if firstName == "" || lastName == "" {
		m.errMsg = "First and last name are required"
		return m, nil
	}

	avatarURL := ""
	if path := strings.TrimSpace(m.inputs[fieldAvatarPath].Value()); path != "" {
		url, err := avatar.FromFile(path)
		if err != nil {
			m.errMsg = "Avatar: " + err.Error()
			return m, nil
		}
		avatarURL = url
	}

	user := model.NewUser(firstName, lastName, avatarURL)
	m.errMsg = ""
	m.submitting = true

	return m, tea.Batch(
		m.spin.Tick,
		tea.Tick(SimulatedDelay, func(time.Time) tea.Msg {
			return delayElapsedMsg{user: user}
		}),
	)
}

// Submitting reports whether the simulated auth delay is in progress.
func (m Model) Submitting() bool {
	return m.submitting
}

// Err returns the current validation error, if any.
func (m Model) Err() string {
	return m.errMsg
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	t := m.theme

	title := t.FormTitle.Render("Ultra Chat")
	subtitle := t.HeaderSubtitle.Render("Create your profile to start chatting")

	labels := [fieldCount]string{"First name", "Last name", "Avatar"}
	var rows []string
	for i := range m.inputs {
		style := t.FormField
		if i == m.focus && !m.submitting {
			style = t.FormFieldFocus
		}
		rows = append(rows,
			t.FormLabel.Render(labels[i]),
			style.Render(m.inputs[i].View()),
		)
	}

	var footer string
	switch {
	case m.submitting:
		footer = m.spin.View() + " " + t.ThinkingText.Render("Signing in...")
	case m.errMsg != "":
		footer = t.FormError.Render(m.errMsg)
	default:
		footer = t.FormHint.Render("enter: next field / submit · tab: move")
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		footer,
	)
	box := t.FormBox.Render(form)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
