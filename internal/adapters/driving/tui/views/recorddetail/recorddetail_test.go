package recorddetail

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/traitdex/internal/core/domain"
)

func testRecord() domain.Implementor {
	return domain.Implementor{
		ID:            "rec-1",
		Crate:         "actix_http",
		TraitPath:     "core::marker::Send",
		Text:          "impl<T> Send for Dispatcher<T> where T: Send",
		Applicability: domain.ApplicabilityConditional,
		TypePaths:     []string{"actix_http::h1::Dispatcher"},
		Generics:      []string{"T"},
		SourceID:      "src-1",
		URI:           "/docs/implementors/core/marker/trait.Send.js",
		CreatedAt:     time.Now(),
	}
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()

	view := NewView(s)

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Nil(t, view.record)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_SetRecord(t *testing.T) {
	view := NewView(nil)
	view.scrollOffset = 3

	view.SetRecord(testRecord())

	assert.Equal(t, "rec-1", view.record.ID)
	assert.Equal(t, "actix_http", view.record.Crate)
	assert.Equal(t, 0, view.scrollOffset)
	assert.NoError(t, view.err)
}

func TestView_SetError(t *testing.T) {
	view := NewView(nil)

	err := errors.New("test error")
	view.SetError(err)

	assert.Error(t, view.err)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil)

	cmd := view.Init()

	assert.Nil(t, cmd)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestView_Update_KeyMsg_Back(t *testing.T) {
	view := NewView(nil)

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	assert.True(t, ok)
	assert.Equal(t, messages.ViewQuery, changed.View)
}

func TestView_Update_KeyMsg_ScrollUp(t *testing.T) {
	view := NewView(nil)
	view.scrollOffset = 5

	msg := tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)
	assert.Equal(t, 4, view.scrollOffset)

	// Test k key
	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(msg)
	assert.Equal(t, 3, view.scrollOffset)

	// Test boundary
	view.scrollOffset = 0
	msg = tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)
	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	view := NewView(nil)

	msg := messages.ErrorOccurred{Err: errors.New("test error")}
	view.Update(msg)

	assert.Error(t, view.err)
}

func TestView_View_NoRecord(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "No record selected")
}

func TestView_View_WithRecord(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 40)
	view.SetRecord(testRecord())

	output := view.View()

	assert.Contains(t, output, "Implementor Record")
	assert.Contains(t, output, "actix_http")
	assert.Contains(t, output, "core::marker::Send")
	assert.Contains(t, output, "impl<T> Send for Dispatcher<T> where T: Send")
	assert.Contains(t, output, "conditional")
	assert.Contains(t, output, "Type paths:")
	assert.Contains(t, output, "actix_http::h1::Dispatcher")
	assert.Contains(t, output, "Generics:")
}

func TestView_View_SyntheticRecord(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 40)
	record := testRecord()
	record.Synthetic = true
	view.SetRecord(record)

	output := view.View()

	assert.Contains(t, output, "Synthetic")
}

func TestView_View_Error(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)
	view.err = errors.New("failed to load record")

	output := view.View()

	assert.Contains(t, output, "Error")
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil)

	view.SetDimensions(100, 50)

	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}
