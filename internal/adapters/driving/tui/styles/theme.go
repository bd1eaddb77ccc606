// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// Theme defines the colour palette for the TUI. The defaults follow
// the rustdoc dark theme so index output reads like the docs it came
// from.
type Theme struct {
	// Primary is the main accent colour, used for titles.
	Primary lipgloss.Color

	// Secondary is the accent for crate and trait names.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for provenance fields and help text.
	Muted lipgloss.Color

	// Success indicates positive outcomes, clean lint runs included.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Unconditional marks impls that always apply.
	Unconditional lipgloss.Color

	// Conditional marks impls gated by a where clause.
	Conditional lipgloss.Color

	// Negative marks negative impls.
	Negative lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:       lipgloss.Color("#E9B064"), // Rustdoc orange
		Secondary:     lipgloss.Color("#39AFD7"), // Trait blue
		Background:    lipgloss.Color("#0F1419"), // Ayu dark
		Foreground:    lipgloss.Color("#E6E1CF"), // Parchment
		Muted:         lipgloss.Color("#5C6773"), // Slate
		Success:       lipgloss.Color("#B8CC52"), // Olive green
		Warning:       lipgloss.Color("#FFB454"), // Amber
		Error:         lipgloss.Color("#F07178"), // Coral red
		Border:        lipgloss.Color("#253340"), // Gutter
		Unconditional: lipgloss.Color("#B8CC52"), // Applies everywhere
		Conditional:   lipgloss.Color("#FFB454"), // Bound-dependent
		Negative:      lipgloss.Color("#F07178"), // Opted out
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers and field labels.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Signature style for impl signature text.
	Signature lipgloss.Style

	// Synthetic style for auto-trait annotations.
	Synthetic lipgloss.Style

	// Unconditional style for impls that always apply.
	Unconditional lipgloss.Style

	// Conditional style for where-clause gated impls.
	Conditional lipgloss.Style

	// Negative style for negative impls.
	Negative lipgloss.Style

	// InputField style for pattern input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Border),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Signature: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Synthetic: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Muted),

		Unconditional: lipgloss.NewStyle().
			Foreground(theme.Unconditional),

		Conditional: lipgloss.NewStyle().
			Foreground(theme.Conditional),

		Negative: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Negative),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Background).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Applicability returns the style for a marker applicability state.
func (s *Styles) Applicability(a domain.Applicability) lipgloss.Style {
	switch a {
	case domain.ApplicabilityNever:
		return s.Negative
	case domain.ApplicabilityConditional:
		return s.Conditional
	case domain.ApplicabilityAlways:
		return s.Unconditional
	}
	return s.Normal
}
