// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for plain-shell CLI output.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/styles"
)

// cliMode is resolved once from the terminal background. The full TUI honors
// the stored preference instead; shell output just needs readable colors.
var cliMode = styles.DetectMode()

func cliColor(p styles.ColorPair) lipgloss.Color {
	if cliMode == model.ThemeDark {
		return lipgloss.Color(p.Dark)
	}
	return lipgloss.Color(p.Light)
}

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(cliColor(styles.Cyan)).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(cliColor(styles.Indigo)).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(cliColor(styles.TextSecondary))

	commandStyle = lipgloss.NewStyle().
			Foreground(cliColor(styles.Emerald))

	warningStyle = lipgloss.NewStyle().
			Foreground(cliColor(styles.Amber))

	errorStyle = lipgloss.NewStyle().
			Foreground(cliColor(styles.Rose)).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(cliColor(styles.Cyan)).
			Bold(true)
)
