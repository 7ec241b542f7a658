// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the root Bubble Tea program for ultrachat.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AzizLive1/ultrachat-tui/internal/analytics"
	"github.com/AzizLive1/ultrachat-tui/internal/chat"
	"github.com/AzizLive1/ultrachat-tui/internal/config"
	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/session"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/chatview"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/dashboard"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/login"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/styles"
)

// Screen identifies the active view.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenChat
	ScreenDashboard
)

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root model. It owns the theme, the active screen, and the
// shared services every screen draws on.
type App struct {
	cfg        *config.Config
	sessions   *session.Manager
	analytics  *analytics.Aggregator
	controller *chat.Controller

	theme  *styles.Theme
	user   *model.User
	screen Screen

	login login.Model
	chat  chatview.Model
	dash  dashboard.Model

	width  int
	height int
}

// NewApp wires the root model. A stored profile skips the login screen; a
// stored theme preference beats the configured one.
func NewApp(cfg *config.Config, sessions *session.Manager, agg *analytics.Aggregator, controller *chat.Controller) (*App, error) {
	mode := resolveMode(cfg, sessions)
	theme := styles.NewTheme(mode)

	// Every launch counts as a visit.
	if err := agg.TrackVisit(); err != nil {
		return nil, err
	}

	user, err := sessions.GetUser()
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:        cfg,
		sessions:   sessions,
		analytics:  agg,
		controller: controller,
		theme:      theme,
		user:       user,
		screen:     ScreenLogin,
		login:      login.New(theme),
		chat:       chatview.New(theme, controller, user, cfg.UI.ShowTimestamps),
		dash:       dashboard.New(theme, agg),
	}

	if user != nil {
		// A restored profile is a returning session.
		if err := agg.TrackSession(user.ID); err != nil {
			return nil, err
		}
		app.screen = ScreenChat
	}
	return app, nil
}

// resolveMode picks the theme mode: stored preference, then config, then
// terminal detection for "auto".
func resolveMode(cfg *config.Config, sessions *session.Manager) model.Theme {
	if stored, ok, err := sessions.GetTheme(); err == nil && ok {
		return stored
	}
	if cfg.UI.Theme == "auto" {
		return styles.DetectMode()
	}
	return model.ParseTheme(cfg.UI.Theme)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenChat {
		return a.chat.Init()
	}
	return a.login.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		cmds = append(cmds, cmd)
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
		a.dash, cmd = a.dash.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case login.DoneMsg:
		return a.completeLogin(msg.User)

	case chatview.EventMsg:
		// Conversation events always reach the chat screen, even when the
		// dashboard is in front.
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if handled, cmd := a.handleGlobalKey(msg); handled {
			return a, cmd
		}
	}

	return a.routeToScreen(msg)
}

// handleGlobalKey handles the app-level shortcuts.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit

	case "ctrl+t":
		if a.screen == ScreenLogin {
			return false, nil
		}
		a.toggleTheme()
		return true, nil

	case "ctrl+d":
		switch a.screen {
		case ScreenChat:
			a.screen = ScreenDashboard
			a.dash.Reload()
			return true, a.dash.Init()
		case ScreenDashboard:
			a.screen = ScreenChat
			return true, nil
		}
		return false, nil

	case "esc":
		if a.screen == ScreenDashboard {
			a.screen = ScreenChat
			return true, nil
		}
		return false, nil

	case "ctrl+l":
		if a.screen == ScreenLogin {
			return false, nil
		}
		return true, a.logout()
	}
	return false, nil
}

// completeLogin stores the new profile and enters the chat.
func (a *App) completeLogin(user *model.User) (tea.Model, tea.Cmd) {
	if err := a.sessions.SetUser(user); err != nil {
		// Storage trouble should not lock the user out of the chat.
		_ = err
	}
	_ = a.analytics.TrackSession(user.ID)

	a.user = user
	a.chat.SetUser(user)
	a.screen = ScreenChat
	return a, a.chat.Init()
}

// logout clears the profile and transcript but leaves analytics and the
// theme preference alone.
func (a *App) logout() tea.Cmd {
	_ = a.sessions.ClearAll()
	a.controller.Reset()
	a.user = nil
	a.screen = ScreenLogin
	a.login = login.New(a.theme)

	var cmds []tea.Cmd
	cmds = append(cmds, a.login.Init())
	if a.width > 0 {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// toggleTheme flips light/dark, persists the choice, and restyles every
// screen.
func (a *App) toggleTheme() {
	mode := a.theme.Mode.Toggle()
	_ = a.sessions.SetTheme(mode)

	a.theme = styles.NewTheme(mode)
	a.theme.SetSize(a.width, a.height)
	a.login.SetTheme(a.theme)
	a.chat.SetTheme(a.theme)
	a.dash.SetTheme(a.theme)
}

// routeToScreen forwards a message to the active screen.
func (a *App) routeToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		a.login, cmd = a.login.Update(msg)
	case ScreenChat:
		a.chat, cmd = a.chat.Update(msg)
	case ScreenDashboard:
		a.dash, cmd = a.dash.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.screen {
	case ScreenChat:
		return a.chat.View()
	case ScreenDashboard:
		return a.theme.Container.Render(a.dash.View())
	default:
		return a.login.View()
	}
}

// User returns the active profile, if any.
func (a *App) User() *model.User {
	return a.user
}

// ActiveScreen returns the screen currently in front.
func (a *App) ActiveScreen() Screen {
	return a.screen
}
