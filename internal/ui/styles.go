// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal interface for adda.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the application. The palette leans
// warm (chai browns, haldi orange) to match the app's register.
type Theme struct {
	Width  int
	Height int

	// Layout
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	// Chat list
	ListTitle    lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListPreview  lipgloss.Style
	ListMuted    lipgloss.Style

	// Chat view
	UserBubble      lipgloss.Style
	CharacterName   lipgloss.Style
	CharacterBubble lipgloss.Style
	Timestamp       lipgloss.Style
	TypingIndicator lipgloss.Style
	Reaction        lipgloss.Style

	// Input
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status / errors
	StatusBar lipgloss.Style
	ErrorText lipgloss.Style
}

// Palette colors.
var (
	colorPrimary   = lipgloss.Color("#D97706") // haldi orange
	colorSecondary = lipgloss.Color("#92400E") // chai brown
	colorUserBg    = lipgloss.Color("#DCF8C6")
	colorUserFg    = lipgloss.Color("#1F2937")
	colorCharFg    = lipgloss.Color("#F5EFE6")
	colorDim       = lipgloss.Color("#9CA3AF")
	colorError     = lipgloss.Color("#DC2626")
	colorBorder    = lipgloss.Color("#B49D7C")
)

// NewTheme builds the default theme.
func NewTheme() *Theme {
	return &Theme{
		App: lipgloss.NewStyle().Padding(0, 1),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1),

		ListTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary),

		ListItem: lipgloss.NewStyle().
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(colorPrimary),

		ListPreview: lipgloss.NewStyle().
			Foreground(colorDim),

		ListMuted: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colorDim),

		UserBubble: lipgloss.NewStyle().
			Background(colorUserBg).
			Foreground(colorUserFg).
			Padding(0, 1),

		CharacterName: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),

		CharacterBubble: lipgloss.NewStyle().
			Foreground(colorCharFg).
			Padding(0, 1),

		Timestamp: lipgloss.NewStyle().
			Foreground(colorDim),

		TypingIndicator: lipgloss.NewStyle().
			Italic(true).
			Foreground(colorDim),

		Reaction: lipgloss.NewStyle().
			Foreground(colorSecondary),

		InputContainer: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorBorder),

		InputPrompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),

		StatusBar: lipgloss.NewStyle().
			Foreground(colorDim),

		ErrorText: lipgloss.NewStyle().
			Foreground(colorError),
	}
}
