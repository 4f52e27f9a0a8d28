// SPDX-License-Identifier: MPL-2.0

package render

import "github.com/charmbracelet/lipgloss"

// Palette shared by every surface. Tuned for dark backgrounds.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
	ColorVerbose   = lipgloss.Color("#9CA3AF")
)

// Theme bundles the styles used by the renderers.
type Theme struct {
	Title       lipgloss.Style
	Group       lipgloss.Style
	Command     lipgloss.Style
	Description lipgloss.Style
	Muted       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
}

// DefaultTheme returns the colored theme. lipgloss drops the colors on its
// own when the output is not a terminal.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Group:       lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		Command:     lipgloss.NewStyle().Foreground(ColorHighlight),
		Description: lipgloss.NewStyle().Foreground(ColorVerbose),
		Muted:       lipgloss.NewStyle().Foreground(ColorMuted),
		Success:     lipgloss.NewStyle().Foreground(ColorSuccess),
		Warning:     lipgloss.NewStyle().Foreground(ColorWarning),
		Error:       lipgloss.NewStyle().Bold(true).Foreground(ColorError),
	}
}

// PlainTheme returns a theme with no styling at all.
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{Title: s, Group: s, Command: s, Description: s, Muted: s, Success: s, Warning: s, Error: s}
}
