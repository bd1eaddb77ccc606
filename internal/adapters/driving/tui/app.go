package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/views/addsource"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/views/crates"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/views/query"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/views/recorddetail"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/views/sourcedetail"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/views/sources"
	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// queryView is the implementor lookup view component.
	queryView *query.View

	// cratesView is the indexed crates list view component.
	cratesView *crates.View

	// recordDetailView shows a single implementor record.
	recordDetailView *recorddetail.View

	// sourcesView is the sources management view component.
	sourcesView *sources.View

	// sourceDetailView is the source detail view component.
	sourceDetailView *sourcedetail.View

	// addSourceView is the add source wizard view component.
	addSourceView *addsource.View

	// settingsView is the settings configuration view component.
	settingsView *settings.View

	// selectedSource tracks the currently selected source for navigation.
	selectedSource *domain.Source

	// currentView tracks which view is active.
	currentView messages.ViewType

	// pattern is the current lookup pattern (kept for accessor compatibility).
	pattern string

	// results holds the current lookup results (kept for accessor compatibility).
	results []domain.QueryResult

	// selectedIndex is the currently selected result (kept for accessor compatibility).
	selectedIndex int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	menuView := menu.NewView(s)
	queryView := query.NewView(s, nil, ports.Query)
	cratesView := crates.NewView(s, ports.Query, ports.Lint)
	recordDetailView := recorddetail.NewView(s)
	sourcesView := sources.NewView(s, ports.Source)
	sourceDetailView := sourcedetail.NewView(s, ports.Source, ports.Scan)
	addSourceView := addsource.NewView(s, ports.Source, ports.ConnectorRegistry)
	settingsView := settings.NewView(s, ports.Settings)

	return &App{
		ports:            ports,
		ctx:              context.Background(),
		styles:           s,
		menuView:         menuView,
		queryView:        queryView,
		cratesView:       cratesView,
		recordDetailView: recordDetailView,
		sourcesView:      sourcesView,
		sourceDetailView: sourceDetailView,
		addSourceView:    addSourceView,
		settingsView:     settingsView,
		currentView:      messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("traitdex - Rustdoc Implementor Index"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.queryView.SetDimensions(msg.Width, msg.Height)
		a.cratesView.SetDimensions(msg.Width, msg.Height)
		a.recordDetailView.SetDimensions(msg.Width, msg.Height)
		a.sourcesView.SetDimensions(msg.Width, msg.Height)
		a.sourceDetailView.SetDimensions(msg.Width, msg.Height)
		a.addSourceView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewQuery:
			a.queryView, cmd = a.queryView.Update(msg)
			// Sync state from queryView for accessor compatibility
			a.pattern = a.queryView.Pattern()
			a.results = a.queryView.Results()
			a.selectedIndex = a.queryView.SelectedIndex()
			a.err = a.queryView.Err()
			return a, cmd

		case messages.ViewCrates:
			a.cratesView, cmd = a.cratesView.Update(msg)
			return a, cmd

		case messages.ViewRecordDetail:
			a.recordDetailView, cmd = a.recordDetailView.Update(msg)
			return a, cmd

		case messages.ViewSources:
			// Esc from sources goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			a.sourcesView, cmd = a.sourcesView.Update(msg)
			return a, cmd

		case messages.ViewSourceDetail:
			a.sourceDetailView, cmd = a.sourceDetailView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil

		case messages.ViewAddSource:
			a.addSourceView, cmd = a.addSourceView.Update(msg)
			return a, cmd

		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd
		}
		return a, nil

	case messages.QueryCompleted:
		// Forward to queryView
		a.queryView, cmd = a.queryView.Update(msg)
		// Sync state
		a.results = a.queryView.Results()
		a.err = a.queryView.Err()
		a.selectedIndex = 0
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewQuery:
			a.queryView.Reset()
			return a, a.queryView.Init()
		case messages.ViewCrates:
			return a, a.cratesView.Load()
		case messages.ViewSources:
			return a, a.sourcesView.Init()
		case messages.ViewSourceDetail:
			return a, a.sourceDetailView.Init()
		case messages.ViewAddSource:
			a.addSourceView.Reset()
			return a, a.addSourceView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp, messages.ViewRecordDetail:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.CratesLoaded:
		a.cratesView, cmd = a.cratesView.Update(msg)
		return a, cmd

	case messages.CrateSelected:
		// Navigate from crates to a crate-scoped lookup
		a.queryView.Reset()
		a.queryView.SetCrateFilter(msg.Crate)
		a.currentView = messages.ViewQuery
		return a, a.queryView.Init()

	case messages.RecordSelected:
		a.recordDetailView.SetRecord(msg.Record)
		a.currentView = messages.ViewRecordDetail
		return a, nil

	case messages.SourceSelected:
		// Navigate from sources to source detail
		a.selectedSource = &msg.Source
		a.sourceDetailView.SetSource(msg.Source)
		a.currentView = messages.ViewSourceDetail
		return a, a.sourceDetailView.Init()

	case messages.ScanCompleted:
		a.sourceDetailView, cmd = a.sourceDetailView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewQuery:
			a.queryView, cmd = a.queryView.Update(msg)
		case messages.ViewCrates:
			a.cratesView, cmd = a.cratesView.Update(msg)
		case messages.ViewRecordDetail:
			a.recordDetailView, cmd = a.recordDetailView.Update(msg)
		case messages.ViewSourceDetail:
			a.sourceDetailView, cmd = a.sourceDetailView.Update(msg)
		case messages.ViewAddSource:
			a.addSourceView, cmd = a.addSourceView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewMenu, messages.ViewSources, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit

	case messages.SourcesLoaded, messages.SourceRemoved:
		// Forward to relevant view
		if a.currentView == messages.ViewSources {
			a.sourcesView, cmd = a.sourcesView.Update(msg)
			return a, cmd
		}
		if a.currentView == messages.ViewSourceDetail {
			a.sourceDetailView, cmd = a.sourceDetailView.Update(msg)
			return a, cmd
		}

	case messages.SourceAdded:
		// Forward to add source view
		if a.currentView == messages.ViewAddSource {
			a.addSourceView, cmd = a.addSourceView.Update(msg)
			return a, cmd
		}

	case messages.SettingsLoaded, messages.SettingsSaved:
		// Forward to settings view
		if a.currentView == messages.ViewSettings {
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd
		}
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewQuery:
		a.queryView, cmd = a.queryView.Update(msg)
	case messages.ViewCrates:
		a.cratesView, cmd = a.cratesView.Update(msg)
	case messages.ViewRecordDetail:
		a.recordDetailView, cmd = a.recordDetailView.Update(msg)
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewSourceDetail:
		a.sourceDetailView, cmd = a.sourceDetailView.Update(msg)
	case messages.ViewAddSource:
		a.addSourceView, cmd = a.addSourceView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewQuery:
		return a.queryView.View()
	case messages.ViewCrates:
		return a.cratesView.View()
	case messages.ViewRecordDetail:
		return a.recordDetailView.View()
	case messages.ViewSources:
		return a.sourcesView.View()
	case messages.ViewSourceDetail:
		return a.sourceDetailView.View()
	case messages.ViewAddSource:
		return a.addSourceView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Query:
  (type)      Enter trait or type pattern
  enter       Submit lookup
  esc         Back to Menu

Results:
  j/k, ↑/↓    Navigate results
  enter       Show record detail
  n           New lookup

Crates:
  enter       Lookup crate
  l           Lint crate
  r           Reload

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Pattern returns the current lookup pattern.
func (a *App) Pattern() string {
	return a.pattern
}

// Results returns the current lookup results.
func (a *App) Results() []domain.QueryResult {
	return a.results
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.selectedIndex
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Also set queryView dimensions so it renders properly
	a.queryView.SetDimensions(width, height)
}
