// Package crates provides the indexed crates list view for the TUI.
package crates

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// lintCompleted carries the outcome of linting a single crate.
type lintCompleted struct {
	crate  string
	report *domain.Report
	err    error
}

// View is the indexed crates list view.
type View struct {
	styles       *styles.Styles
	queryService driving.QueryService
	lintService  driving.LintService

	crates       []driving.CrateSummary
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	linting      bool
	lintCrate    string
	lintReport   *domain.Report
	scrollOffset int
}

// NewView creates a new crates view.
func NewView(s *styles.Styles, queryService driving.QueryService, lintService driving.LintService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:       s,
		queryService: queryService,
		lintService:  lintService,
		crates:       []driving.CrateSummary{},
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that loads crate summaries from the index.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.selected = 0
	v.scrollOffset = 0
	v.lintReport = nil
	v.lintCrate = ""
	return func() tea.Msg {
		if v.queryService == nil {
			return messages.CratesLoaded{Err: fmt.Errorf("query service not available")}
		}

		crates, err := v.queryService.Crates(context.Background())
		return messages.CratesLoaded{Crates: crates, Err: err}
	}
}

// Update handles messages for the crates view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CratesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.crates = msg.Crates
			v.err = nil
		}
		return v, nil

	case lintCompleted:
		v.linting = false
		if msg.err != nil {
			v.err = msg.err
		} else {
			v.lintCrate = msg.crate
			v.lintReport = msg.report
			v.err = nil
		}
		return v, nil

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
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.crates)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.crates) {
			crate := v.crates[v.selected].Crate
			return v, func() tea.Msg {
				return messages.CrateSelected{Crate: crate}
			}
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "l":
		if v.selected < len(v.crates) {
			crate := v.crates[v.selected].Crate
			v.linting = true
			return v, v.lintCrateCmd(crate)
		}
	case "r":
		cmd := v.Load()
		return v, cmd
	}

	return v, nil
}

// lintCrateCmd returns a command that lints a single crate.
func (v *View) lintCrateCmd(crate string) tea.Cmd {
	return func() tea.Msg {
		if v.lintService == nil {
			return lintCompleted{crate: crate, err: fmt.Errorf("lint service not available")}
		}

		report, err := v.lintService.Lint(context.Background(), driving.LintOptions{Crates: []string{crate}})
		return lintCompleted{crate: crate, report: report, err: err}
	}
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the crates view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Indexed Crates (%d)", len(v.crates))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading crates..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.crates) == 0 {
		b.WriteString(v.styles.Muted.Render("No crates indexed. Scan a source first."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.crates) && i < v.scrollOffset+visibleItems; i++ {
		line := v.renderCrate(i, &v.crates[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(v.crates) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.crates)),
			len(v.crates))))
	}

	if v.linting {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Linting..."))
	} else if v.lintReport != nil {
		b.WriteString("\n")
		b.WriteString(v.renderLintSummary())
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderLintSummary renders a one-line summary of the last lint run.
func (v *View) renderLintSummary() string {
	counts := v.lintReport.CountBySeverity()
	errors := counts[domain.SeverityError]
	warnings := counts[domain.SeverityWarning]

	summary := fmt.Sprintf("Lint %s: %d errors, %d warnings", v.lintCrate, errors, warnings)
	if errors > 0 {
		return v.styles.Error.Render(summary)
	}
	if warnings > 0 {
		return v.styles.Warning.Render(summary)
	}
	return v.styles.Success.Render(fmt.Sprintf("Lint %s: clean", v.lintCrate))
}

// renderCrate renders a single crate line.
func (v *View) renderCrate(index int, crate *driving.CrateSummary) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := crate.Crate
	maxNameLen := v.width/2 - 4
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	counts := fmt.Sprintf("%d records, %d traits", crate.Records, crate.Traits)

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, counts))
	}

	return v.styles.Normal.Render(indicator) +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxNameLen, name)) +
		v.styles.Muted.Render(counts)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] lookup crate  [l] lint  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Crates returns the current list of crate summaries.
func (v *View) Crates() []driving.CrateSummary {
	return v.crates
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedCrate returns the currently selected crate summary.
func (v *View) SelectedCrate() *driving.CrateSummary {
	if v.selected < len(v.crates) {
		return &v.crates[v.selected]
	}
	return nil
}

// LintReport returns the report from the last lint run, if any.
func (v *View) LintReport() *domain.Report {
	return v.lintReport
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
