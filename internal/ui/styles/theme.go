// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
)

// Theme holds all the styled components for the application, resolved for
// one mode. Toggling the mode means building a fresh Theme.
type Theme struct {
	Mode model.Theme

	// Terminal capabilities
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderUser     lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorBubble     lipgloss.Style
	BubbleMeta      lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// FORM STYLES (LOGIN)
	// ==========================================================================

	FormBox        lipgloss.Style
	FormTitle      lipgloss.Style
	FormLabel      lipgloss.Style
	FormField      lipgloss.Style
	FormFieldFocus lipgloss.Style
	FormError      lipgloss.Style
	FormHint       lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusState  lipgloss.Style
	StatusError  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// DASHBOARD STYLES
	// ==========================================================================

	StatCard      lipgloss.Style
	StatLabel     lipgloss.Style
	StatValue     lipgloss.Style
	LiveDot       lipgloss.Style
	ChartBox      lipgloss.Style
	ChartTitle    lipgloss.Style
	ChartBarFill  lipgloss.Style
	ChartBarTrack lipgloss.Style
	ChartAxis     lipgloss.Style
}

// DetectMode returns the theme mode suggested by the terminal background.
// Used when the stored preference is absent or set to "auto".
func DetectMode() model.Theme {
	if termenv.HasDarkBackground() {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// NewTheme creates a theme resolved for the given mode.
func NewTheme(mode model.Theme) *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		Mode:         mode,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// Color resolves a pair against the theme mode.
func (t *Theme) Color(p ColorPair) lipgloss.Color {
	if t.Mode == model.ThemeDark {
		return lipgloss.Color(p.Dark)
	}
	return lipgloss.Color(p.Light)
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Color(Indigo)).
		Background(t.Color(SurfaceDim)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(Indigo)).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Color(Indigo))

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(t.Color(TextSecondary)).
		Italic(true)

	t.HeaderUser = lipgloss.NewStyle().
		Foreground(t.Color(Cyan)).
		Bold(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(t.Color(UserBubbleFg)).
		Background(t.Color(UserBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(UserBubbleBorder)).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(t.Color(AssistantBubbleFg)).
		Background(t.Color(AssistantBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(AssistantBubbleBorder)).
		Padding(0, 2).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(t.Color(Rose)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(Rose)).
		Padding(0, 2).
		MarginRight(4)

	t.BubbleMeta = lipgloss.NewStyle().
		Foreground(t.Color(TextMuted))

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(t.Color(Overlay)).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(t.Color(Cyan)).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(t.Color(TextPrimary))

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(t.Color(TextMuted)).
		Italic(true)

	// Login form
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(t.Color(Indigo)).
		Padding(1, 4)

	t.FormTitle = lipgloss.NewStyle().
		Foreground(t.Color(Indigo)).
		Bold(true)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(t.Color(TextSecondary))

	t.FormField = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Color(Overlay)).
		Padding(0, 1)

	t.FormFieldFocus = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Color(Cyan)).
		Padding(0, 1)

	t.FormError = lipgloss.NewStyle().
		Foreground(t.Color(Rose))

	t.FormHint = lipgloss.NewStyle().
		Foreground(t.Color(TextMuted)).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(t.Color(SurfaceDim)).
		Foreground(t.Color(TextSecondary)).
		Padding(0, 1)

	t.StatusState = lipgloss.NewStyle().
		Foreground(t.Color(Emerald)).
		Bold(true)

	t.StatusError = lipgloss.NewStyle().
		Foreground(t.Color(Rose)).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(t.Color(Cyan)).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(t.Color(TextMuted))

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(t.Color(Indigo))

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(t.Color(TextSecondary))

	// Dashboard
	t.StatCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(Overlay)).
		Padding(0, 2)

	t.StatLabel = lipgloss.NewStyle().
		Foreground(t.Color(TextMuted))

	t.StatValue = lipgloss.NewStyle().
		Foreground(t.Color(TextPrimary)).
		Bold(true)

	t.LiveDot = lipgloss.NewStyle().
		Foreground(t.Color(Emerald)).
		Bold(true)

	t.ChartBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Color(Overlay)).
		Padding(1, 2)

	t.ChartTitle = lipgloss.NewStyle().
		Foreground(t.Color(Indigo)).
		Bold(true)

	t.ChartBarFill = lipgloss.NewStyle().
		Foreground(t.Color(BarFill))

	t.ChartBarTrack = lipgloss.NewStyle().
		Foreground(t.Color(BarTrack))

	t.ChartAxis = lipgloss.NewStyle().
		Foreground(t.Color(TextMuted))
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
