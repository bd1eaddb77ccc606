// Package recorddetail provides the implementor record detail view for the TUI.
package recorddetail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// View is the implementor record detail view.
type View struct {
	styles *styles.Styles

	record       *domain.Implementor
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new record detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
	}
}

// SetRecord sets the record to display.
func (v *View) SetRecord(record domain.Implementor) {
	v.record = &record
	v.scrollOffset = 0
	v.err = nil
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the record detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		maxOffset := v.maxScrollOffset()
		if v.scrollOffset < maxOffset {
			v.scrollOffset++
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewQuery}
		}
	}

	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	lines := v.buildContent()
	maxOffset := len(lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	if v.record == nil {
		return nil
	}

	var lines []string

	lines = append(lines,
		v.formatField("ID", v.record.ID),
		v.formatField("Crate", v.record.Crate),
		v.formatField("Trait", v.record.TraitPath),
		v.formatField("Signature", v.record.Text),
		v.formatField("Applies", string(v.record.Applicability)))

	if v.record.Synthetic {
		lines = append(lines, v.formatField("Synthetic", "yes"))
	}

	if v.record.URI != "" {
		lines = append(lines, v.formatField("Fragment", v.record.URI))
	}
	if v.record.SourceID != "" {
		lines = append(lines, v.formatField("Source", v.record.SourceID))
	}
	if !v.record.CreatedAt.IsZero() {
		lines = append(lines, v.formatField("Indexed", v.record.CreatedAt.Format("2006-01-02 15:04:05")))
	}

	// Type paths section
	if len(v.record.TypePaths) > 0 {
		lines = append(lines, "", "Type paths:")
		for _, p := range v.record.TypePaths {
			lines = append(lines, "  "+p)
		}
	}

	// Generic parameters section
	if len(v.record.Generics) > 0 {
		lines = append(lines, "", "Generics:")
		for _, g := range v.record.Generics {
			lines = append(lines, "  "+g)
		}
	}

	return lines
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the record detail view.
func (v *View) View() string {
	var b strings.Builder

	// Title
	b.WriteString(v.styles.Title.Render("Implementor Record"))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// No record
	if v.record == nil {
		b.WriteString(v.styles.Muted.Render("No record selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Content
	lines := v.buildContent()
	visibleLines := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visibleLines; i++ {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, "Type paths:"), strings.HasPrefix(line, "Generics:"):
			b.WriteString(v.styles.Subtitle.Render(line))
		case strings.HasPrefix(line, "  "):
			b.WriteString(v.styles.Muted.Render(line))
		case strings.HasPrefix(line, "Applies:"):
			parts := strings.SplitN(line, ":", 2)
			b.WriteString(v.styles.Subtitle.Render(parts[0] + ":"))
			b.WriteString(v.styles.Applicability(v.record.Applicability).Render(parts[1]))
		case strings.HasPrefix(line, "Signature:"):
			parts := strings.SplitN(line, ":", 2)
			b.WriteString(v.styles.Subtitle.Render(parts[0] + ":"))
			b.WriteString(v.styles.Signature.Render(parts[1]))
		case strings.Contains(line, ":"):
			parts := strings.SplitN(line, ":", 2)
			b.WriteString(v.styles.Subtitle.Render(parts[0] + ":"))
			b.WriteString(v.styles.Normal.Render(parts[1]))
		default:
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(lines) > visibleLines {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			minInt(v.scrollOffset+visibleLines, len(lines)),
			len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Record returns the current record.
func (v *View) Record() *domain.Implementor {
	return v.record
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
