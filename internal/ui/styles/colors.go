// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ultrachat TUI.
//
// Colors are declared as light/dark pairs and resolved against the active
// theme mode rather than the terminal background, because the mode is a user
// setting that persists across sessions.
package styles

// ColorPair is a light/dark pair resolved by the active theme mode.
type ColorPair struct {
	Light string
	Dark  string
}

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Indigo - Primary accent, brand color, selections
var Indigo = ColorPair{Light: "#4F46E5", Dark: "#818CF8"}

// IndigoDeep - Darker indigo for backgrounds
var IndigoDeep = ColorPair{Light: "#3730A3", Dark: "#312E81"}

// Cyan - Secondary accent, live indicators
var Cyan = ColorPair{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states, positive stats
var Emerald = ColorPair{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, critical alerts
var Rose = ColorPair{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, caution states
var Amber = ColorPair{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = ColorPair{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = ColorPair{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = ColorPair{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = ColorPair{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = ColorPair{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = ColorPair{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = ColorPair{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Indigo tones
var UserBubbleBg = ColorPair{Light: "#E0E7FF", Dark: "#3730A3"}
var UserBubbleFg = ColorPair{Light: "#3730A3", Dark: "#E0E7FF"}
var UserBubbleBorder = ColorPair{Light: "#6366F1", Dark: "#6366F1"}

// Assistant message bubble - Neutral tones
var AssistantBubbleBg = ColorPair{Light: "#F9FAFB", Dark: "#313244"}
var AssistantBubbleFg = ColorPair{Light: "#1F2937", Dark: "#E9E4F5"}
var AssistantBubbleBorder = ColorPair{Light: "#D1D5DB", Dark: "#585B70"}

// =============================================================================
// CHART COLORS
// =============================================================================

// BarFill - Daily usage bar fill
var BarFill = ColorPair{Light: "#4F46E5", Dark: "#818CF8"}

// BarTrack - Daily usage bar background
var BarTrack = ColorPair{Light: "#E5E7EB", Dark: "#313244"}
