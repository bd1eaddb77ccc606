// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
)

// PatternInput wraps a bubbles textinput with query-specific styling.
type PatternInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewPatternInput creates a new pattern input component.
func NewPatternInput(s *styles.Styles) *PatternInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Type or trait pattern..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &PatternInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the pattern input.
func (s *PatternInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *PatternInput) Update(msg tea.Msg) (*PatternInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the pattern input.
func (s *PatternInput) View() string {
	label := s.styles.Title.Render("Pattern: ")
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (s *PatternInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *PatternInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *PatternInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *PatternInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *PatternInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *PatternInput) SetWidth(width int) {
	s.width = width
	// Account for label and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *PatternInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *PatternInput) Reset() {
	s.textinput.Reset()
}
