// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// ResultList displays implementor lookup results in a navigable list.
type ResultList struct {
	results  []domain.QueryResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		results:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			r.MoveUp()
		case "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)*2+2)

	// Header
	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results)))
	lines = append(lines, header, "")

	// Calculate visible range based on height
	// Each result takes 2-3 lines (heading + signature + optional source), so divide by 3
	visibleCount := (r.height - 4) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		line := r.renderResult(i, &r.results[i])
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single lookup result with its signature text.
func (r *ResultList) renderResult(index int, result *domain.QueryResult) string {
	rec := &result.Implementor

	// Indicator for selected item
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	// Heading: crate and trait path, with applicability marker
	heading := fmt.Sprintf("%s :: %s", rec.Crate, rec.TraitPath)
	maxHeadingLen := r.width - 20
	if maxHeadingLen < 10 {
		maxHeadingLen = 10
	}
	if len(heading) > maxHeadingLen {
		heading = heading[:maxHeadingLen-3] + "..."
	}

	marker := string(rec.Applicability)
	if rec.Synthetic {
		marker += " (auto)"
	}

	var headingLine string
	if index == r.selected {
		headingLine = r.styles.Selected.Render(
			fmt.Sprintf("%s%-*s  %s", indicator, maxHeadingLen, heading, marker))
	} else {
		headingLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxHeadingLen, heading)) +
			r.styles.Muted.Render(marker)
	}

	// Signature text, truncated to fit width
	signature := rec.Text
	maxSigLen := r.width - 6
	if maxSigLen < 20 {
		maxSigLen = 20
	}
	if len(signature) > maxSigLen {
		signature = signature[:maxSigLen-3] + "..."
	}

	signatureLine := r.styles.Muted.Render("    " + signature)

	// Source name line (if available)
	var sourceLine string
	if result.SourceName != "" {
		sourceLine = "\n" + r.styles.Subtitle.Render("    "+result.SourceName)
	}

	return headingLine + sourceLine + "\n" + signatureLine
}

// SetResults updates the result list.
func (r *ResultList) SetResults(results []domain.QueryResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.QueryResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.QueryResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
