// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette of the box office UI. All colors are
// ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Ticket availability and selection.
	Checked          lipgloss.Color
	GeneralAdmission lipgloss.Color
	Price            lipgloss.Color
	Unavailable      lipgloss.Color

	// Status bar.
	BadgeForeground  lipgloss.Color
	NoticeForeground lipgloss.Color
	ErrorForeground  lipgloss.Color

	// Characters of a suggestion matching the typed query.
	MatchForeground lipgloss.Color

	LinkForeground lipgloss.Color

	// Confirmation prompt box.
	PromptForeground lipgloss.Color
	PromptBackground lipgloss.Color
}

// DefaultTheme is the built-in scheme for dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Checked:          lipgloss.Color("114"), // green
	GeneralAdmission: lipgloss.Color("141"), // light purple
	Price:            lipgloss.Color("220"), // amber
	Unavailable:      lipgloss.Color("240"),

	BadgeForeground:  lipgloss.Color("75"),
	NoticeForeground: lipgloss.Color("114"),
	ErrorForeground:  lipgloss.Color("196"),

	MatchForeground: lipgloss.Color("208"),

	LinkForeground: lipgloss.Color("75"),

	PromptForeground: lipgloss.Color("252"),
	PromptBackground: lipgloss.Color("237"),
}
