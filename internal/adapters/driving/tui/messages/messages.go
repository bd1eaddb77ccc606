// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// PatternChanged is sent when the query pattern input changes.
type PatternChanged struct {
	Pattern string
}

// QueryRequested is a command to perform a lookup.
type QueryRequested struct {
	Pattern string
	Options domain.QueryOptions
}

// QueryCompleted carries lookup results back to the model.
type QueryCompleted struct {
	Results []domain.QueryResult
	Err     error
}

// ResultSelected is sent when a result is selected.
type ResultSelected struct {
	Index int
}

// RecordSelected signals an implementor record was selected for detail view.
type RecordSelected struct {
	Record domain.Implementor
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuery is the pattern input and results view.
	ViewQuery
	// ViewCrates lists indexed crates.
	ViewCrates
	// ViewRecordDetail shows one implementor record.
	ViewRecordDetail
	// ViewSources is the source management view.
	ViewSources
	// ViewSourceDetail shows details for a single source.
	ViewSourceDetail
	// ViewAddSource is the add source wizard.
	ViewAddSource
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuery:
		return "query"
	case ViewCrates:
		return "crates"
	case ViewRecordDetail:
		return "record_detail"
	case ViewSources:
		return "sources"
	case ViewSourceDetail:
		return "source_detail"
	case ViewAddSource:
		return "add_source"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CratesLoaded carries the per-crate index summaries.
type CratesLoaded struct {
	Crates []driving.CrateSummary
	Err    error
}

// CrateSelected signals a crate was selected for filtered lookup.
type CrateSelected struct {
	Crate string
}

// SourcesLoaded carries the list of sources from the service.
type SourcesLoaded struct {
	Sources []domain.Source
	Err     error
}

// SourceAdded signals a source was added.
type SourceAdded struct {
	Source domain.Source
	Err    error
}

// SourceRemoved signals a source was removed.
type SourceRemoved struct {
	ID  string
	Err error
}

// SourceSelected signals a source was selected for detail view.
type SourceSelected struct {
	Source domain.Source
}

// ScanCompleted signals a scan run finished for a source.
type ScanCompleted struct {
	SourceID string
	Err      error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
