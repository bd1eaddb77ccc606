package query

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// MockQueryService implements driving.QueryService for testing.
type MockQueryService struct {
	QueryFunc func(ctx context.Context, pattern string, opts domain.QueryOptions) ([]domain.QueryResult, error)
}

func (m *MockQueryService) Query(
	ctx context.Context,
	pattern string,
	opts domain.QueryOptions,
) ([]domain.QueryResult, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, pattern, opts)
	}
	return []domain.QueryResult{}, nil
}

func (m *MockQueryService) Get(ctx context.Context, id string) (*domain.Implementor, error) {
	return nil, errors.New("not found")
}

func (m *MockQueryService) Registry(ctx context.Context, traitPath string) (*domain.Registry, error) {
	return nil, nil
}

func (m *MockQueryService) Crates(ctx context.Context) ([]driving.CrateSummary, error) {
	return nil, nil
}

func (m *MockQueryService) Traits(ctx context.Context) ([]driving.TraitSummary, error) {
	return nil, nil
}

// Helper function to create test lookup results.
func testQueryResults() []domain.QueryResult {
	return []domain.QueryResult{
		{
			Implementor: domain.Implementor{
				ID:            "1",
				Crate:         "actix_http",
				TraitPath:     "core::marker::Send",
				Text:          "impl<T> Send for Dispatcher<T> where T: Send",
				Applicability: domain.ApplicabilityConditional,
				SourceID:      "test-source",
			},
			SourceName: "local docs",
		},
		{
			Implementor: domain.Implementor{
				ID:            "2",
				Crate:         "actix_web",
				TraitPath:     "core::marker::Sync",
				Text:          "impl !Sync for Extensions",
				Applicability: domain.ApplicabilityNever,
				SourceID:      "test-source",
			},
			SourceName: "local docs",
		},
	}
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	mock := &MockQueryService{}

	view := NewView(s, km, mock)

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, "", view.Pattern())
	assert.True(t, view.InputFocused())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, nil)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := view.WithContext(ctx)

	assert.Equal(t, view, result)
	assert.Equal(t, ctx, view.ctx)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, nil)

	cmd := view.Init()

	// Blink command from input
	assert.NotNil(t, cmd)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
	assert.Equal(t, 80, view.Width())
	assert.Equal(t, 24, view.Height())
}

func TestView_Update_QueryCompleted(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.focusInput = true

	results := testQueryResults()
	msg := messages.QueryCompleted{Results: results, Err: nil}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.Len(t, view.Results(), 2)
	assert.False(t, view.InputFocused())
}

func TestView_Update_QueryCompleted_WithError(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	err := errors.New("lookup failed")
	msg := messages.QueryCompleted{Results: nil, Err: err}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.Error(t, view.Err())
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	view := NewView(nil, nil, nil)

	err := errors.New("something went wrong")
	msg := messages.ErrorOccurred{Err: err}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.Error(t, view.Err())
}

func TestView_Update_KeyEnter_WithPattern(t *testing.T) {
	queryCalled := false
	mock := &MockQueryService{
		QueryFunc: func(ctx context.Context, pattern string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
			queryCalled = true
			assert.Equal(t, "Send", pattern)
			assert.True(t, opts.IncludeSynthetic)
			return []domain.QueryResult{}, nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetPattern("Send")

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	assert.IsType(t, messages.QueryCompleted{}, result)
	assert.True(t, queryCalled)
	assert.False(t, view.InputFocused())
}

func TestView_Update_KeyEnter_EmptyPattern(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	assert.Nil(t, cmd)
}

func TestView_Update_KeyEnter_EmptyPatternWithCrateFilter(t *testing.T) {
	var gotOpts domain.QueryOptions
	mock := &MockQueryService{
		QueryFunc: func(ctx context.Context, pattern string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
			gotOpts = opts
			return []domain.QueryResult{}, nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetCrateFilter("actix_web")

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"actix_web"}, gotOpts.Crates)
}

func TestView_Update_KeyEsc_BackToMenu(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_Update_KeyN_NewLookup(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.QueryCompleted{Results: testQueryResults()})
	view.focusInput = false
	view.SetPattern("old pattern")

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}
	view.Update(msg)

	assert.True(t, view.InputFocused())
	assert.Equal(t, "", view.Pattern())
}

func TestView_Update_KeyEnter_InResultsMode_SelectsRecord(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.QueryCompleted{Results: testQueryResults()})
	view.focusInput = false

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	selected, ok := result.(messages.RecordSelected)
	require.True(t, ok)
	assert.Equal(t, "actix_http", selected.Record.Crate)
}

func TestView_Update_KeyEnter_InResultsMode_NoResults(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.focusInput = false

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := view.Update(msg)

	assert.Nil(t, cmd)
}

func TestView_Update_KeyUp(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.Update(messages.QueryCompleted{
		Results: testQueryResults(),
	})
	// Simulate being in results mode (after lookup)
	view.focusInput = false

	// Select second item first
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.SelectedIndex())

	msg := tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)

	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Update_KeyDown(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.Update(messages.QueryCompleted{
		Results: testQueryResults(),
	})
	// Simulate being in results mode (after lookup)
	view.focusInput = false

	msg := tea.KeyMsg{Type: tea.KeyDown}
	view.Update(msg)

	assert.Equal(t, 1, view.SelectedIndex())
}

func TestView_Update_KeyK(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.Update(messages.QueryCompleted{
		Results: testQueryResults(),
	})
	view.focusInput = false
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(msg)

	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Update_KeyJ(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.Update(messages.QueryCompleted{
		Results: testQueryResults(),
	})
	view.focusInput = false

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(msg)

	assert.Equal(t, 1, view.SelectedIndex())
}

func TestView_Update_CharacterInput(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	view.Update(msg)

	assert.Equal(t, "a", view.Pattern())
}

func TestView_Update_Backspace(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetPattern("test")

	msg := tea.KeyMsg{Type: tea.KeyBackspace}
	view.Update(msg)

	assert.Equal(t, "tes", view.Pattern())
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, nil)

	output := view.View()

	assert.Contains(t, output, "Initialising")
}

func TestView_View_Ready(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "Traitdex")
	assert.Contains(t, output, "Pattern")
}

func TestView_View_WithError(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.err = errors.New("test error")

	output := view.View()

	assert.Contains(t, output, "Error")
	assert.Contains(t, output, "test error")
}

func TestView_View_WithResults(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.QueryCompleted{
		Results: testQueryResults(),
	})

	output := view.View()

	assert.Contains(t, output, "actix_http")
}

func TestView_View_WithCrateFilter(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.SetCrateFilter("actix_web")

	output := view.View()

	assert.Contains(t, output, "Crate: actix_web")
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.SetDimensions(100, 50)

	assert.Equal(t, 100, view.Width())
	assert.Equal(t, 50, view.Height())
	assert.True(t, view.Ready())
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.SetPattern("Send")
	view.SetCrateFilter("actix_web")
	view.Update(messages.QueryCompleted{Results: testQueryResults()})
	view.err = errors.New("old error")

	view.Reset()

	assert.Equal(t, "", view.Pattern())
	assert.Equal(t, "", view.CrateFilter())
	assert.Empty(t, view.Results())
	assert.NoError(t, view.Err())
	assert.True(t, view.InputFocused())
}

func TestView_PerformQuery_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	cmd := view.performQuery("Send")
	result := cmd()

	occurred, ok := result.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, occurred.Err, ErrNoQueryService)
}
