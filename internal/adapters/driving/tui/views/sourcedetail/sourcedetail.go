// Package sourcedetail provides the source detail view component for the TUI.
package sourcedetail

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

// MenuOption represents an action in the source detail menu.
type MenuOption int

const (
	OptionScanNow MenuOption = iota
	OptionDeleteSource
	OptionBack
)

// View is the source detail view.
type View struct {
	styles           *styles.Styles
	sourceService    driving.SourceService
	scanOrchestrator driving.ScanOrchestrator

	source   *domain.Source
	status   *driving.ScanStatus
	selected MenuOption
	width    int
	height   int
	ready    bool
	err      error
	scanning bool
	deleting bool
}

// NewView creates a new source detail view.
func NewView(
	s *styles.Styles,
	sourceService driving.SourceService,
	scanOrchestrator driving.ScanOrchestrator,
) *View {
	return &View{
		styles:           s,
		sourceService:    sourceService,
		scanOrchestrator: scanOrchestrator,
		selected:         OptionScanNow,
	}
}

// SetSource sets the source to display details for.
func (v *View) SetSource(source domain.Source) {
	v.source = &source
	v.status = nil
	v.err = nil
	v.scanning = false
	v.deleting = false
	v.selected = OptionScanNow
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.loadStatus()
}

// loadStatus returns a command that loads scan status for the source.
func (v *View) loadStatus() tea.Cmd {
	return func() tea.Msg {
		if v.source == nil || v.scanOrchestrator == nil {
			return nil
		}

		status, err := v.scanOrchestrator.Status(context.Background(), v.source.ID)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		v.status = status
		return nil
	}
}

// Update handles messages for the source detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ScanCompleted:
		v.scanning = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		// Refresh counters after the scan
		cmd := v.loadStatus()
		return v, cmd

	case messages.SourceRemoved:
		v.deleting = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			// Navigate back after deletion
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSources}
			}
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.scanning = false
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > OptionScanNow {
			v.selected--
		}
	case "down", "j":
		if v.selected < OptionBack {
			v.selected++
		}
	case "enter":
		return v.handleSelect()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSources}
		}
	}

	return v, nil
}

// handleSelect handles selection of a menu option.
func (v *View) handleSelect() (*View, tea.Cmd) {
	switch v.selected {
	case OptionScanNow:
		v.scanning = true
		cmd := v.scanSource()
		return v, cmd
	case OptionDeleteSource:
		cmd := v.deleteSource()
		return v, cmd
	case OptionBack:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSources}
		}
	}
	return v, nil
}

// scanSource returns a command that scans the source.
func (v *View) scanSource() tea.Cmd {
	return func() tea.Msg {
		if v.source == nil || v.scanOrchestrator == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("scan not available")}
		}

		err := v.scanOrchestrator.Scan(context.Background(), v.source.ID)
		return messages.ScanCompleted{SourceID: v.source.ID, Err: err}
	}
}

// deleteSource returns a command that deletes the source.
func (v *View) deleteSource() tea.Cmd {
	return func() tea.Msg {
		if v.source == nil || v.sourceService == nil {
			return messages.SourceRemoved{Err: fmt.Errorf("source service not available")}
		}

		v.deleting = true
		err := v.sourceService.Remove(context.Background(), v.source.ID)
		return messages.SourceRemoved{ID: v.source.ID, Err: err}
	}
}

// View renders the source detail view.
func (v *View) View() string {
	if v.source == nil {
		return v.styles.Muted.Render("No source selected")
	}

	var b strings.Builder

	// Title
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Source: %s", v.source.Name)))
	b.WriteString("\n\n")

	// Source info
	b.WriteString(v.styles.Subtitle.Render("Type: "))
	b.WriteString(v.styles.Normal.Render(v.source.Type))
	b.WriteString("\n")

	b.WriteString(v.styles.Subtitle.Render("ID: "))
	b.WriteString(v.styles.Muted.Render(v.source.ID))
	b.WriteString("\n")

	if v.status != nil {
		b.WriteString(v.styles.Subtitle.Render("Fragments: "))
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%d", v.status.FragmentsProcessed)))
		b.WriteString("\n")

		b.WriteString(v.styles.Subtitle.Render("Records: "))
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%d", v.status.RecordsIndexed)))
		b.WriteString("\n")

		if v.status.ErrorCount > 0 {
			b.WriteString(v.styles.Subtitle.Render("Errors: "))
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("%d", v.status.ErrorCount)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	// Status
	if v.scanning {
		b.WriteString(v.styles.Muted.Render("Scanning..."))
		b.WriteString("\n\n")
	}
	if v.deleting {
		b.WriteString(v.styles.Muted.Render("Deleting..."))
		b.WriteString("\n\n")
	}

	// Menu separator
	b.WriteString(strings.Repeat("─", minInt(40, v.width-4)))
	b.WriteString("\n\n")

	// Menu options
	options := []struct {
		option MenuOption
		label  string
	}{
		{OptionScanNow, "Scan Now"},
		{OptionDeleteSource, "Delete Source"},
		{OptionBack, "Back"},
	}

	for _, opt := range options {
		indicator := "  "
		if v.selected == opt.option {
			indicator = "> "
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("%s%s", indicator, opt.label)))
		} else {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s%s", indicator, opt.label)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Source returns the current source.
func (v *View) Source() *domain.Source {
	return v.source
}

// SelectedOption returns the currently selected menu option.
func (v *View) SelectedOption() MenuOption {
	return v.selected
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
