// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// View is the settings view: a key-value list with inline editing.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	keys     []string
	values   map[string]string
	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
	err    error
	saved  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 128

	return &View{
		styles:          s,
		settingsService: settingsService,
		values:          make(map[string]string),
		input:           input,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// settingsLoaded carries the key-value snapshot from the service.
type settingsLoaded struct {
	keys   []string
	values map[string]string
	err    error
}

// loadSettings returns a command that loads all setting keys and values.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return settingsLoaded{err: fmt.Errorf("settings service not available")}
		}

		keys := v.settingsService.Keys()
		values := make(map[string]string, len(keys))
		for _, key := range keys {
			value, err := v.settingsService.GetKey(key)
			if err != nil {
				return settingsLoaded{err: err}
			}
			values[key] = value
		}
		return settingsLoaded{keys: keys, values: values}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case settingsLoaded:
		if msg.err != nil {
			v.err = msg.err
		} else {
			v.keys = msg.keys
			v.values = msg.values
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.saved = true
		v.err = nil
		v.editing = false
		// Reload so rendered values reflect what was parsed
		cmd := v.loadSettings()
		return v, cmd

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		return v.handleEditKeys(msg)
	}
	return v.handleListKeys(msg)
}

// handleListKeys handles key presses in list mode.
func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.saved = false
		}
	case "down", "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
			v.saved = false
		}
	case "enter":
		if v.selected < len(v.keys) {
			key := v.keys[v.selected]
			v.editing = true
			v.saved = false
			v.err = nil
			v.input.SetValue(v.values[key])
			v.input.CursorEnd()
			return v, v.input.Focus()
		}
	case "r":
		cmd := v.loadSettings()
		return v, cmd
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// handleEditKeys handles key presses while editing a value.
func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	case tea.KeyEnter:
		if v.selected < len(v.keys) {
			key := v.keys[v.selected]
			value := strings.TrimSpace(v.input.Value())
			cmd := v.saveKey(key, value)
			return v, cmd
		}
		return v, nil
	default:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
}

// saveKey returns a command that persists one setting.
func (v *View) saveKey(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}

		err := v.settingsService.SetKey(key, value)
		return messages.SettingsSaved{Err: err}
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}
	if v.saved {
		b.WriteString(v.styles.Success.Render("Saved."))
		b.WriteString("\n\n")
	}

	if len(v.keys) == 0 {
		b.WriteString(v.styles.Muted.Render("No settings available."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	maxKeyLen := 0
	for _, key := range v.keys {
		if len(key) > maxKeyLen {
			maxKeyLen = len(key)
		}
	}

	for i, key := range v.keys {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		if i == v.selected && v.editing {
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("%s%-*s", indicator, maxKeyLen, key)))
			b.WriteString("  ")
			b.WriteString(v.input.View())
		} else if i == v.selected {
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxKeyLen, key, v.values[key])))
		} else {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxKeyLen, key)))
			b.WriteString(v.styles.Muted.Render(v.values[key]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[↑/↓] navigate  [enter] edit  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset clears transient edit state.
func (v *View) Reset() {
	v.editing = false
	v.saved = false
	v.err = nil
	v.input.Blur()
	v.input.SetValue("")
}

// Keys returns the setting keys on display.
func (v *View) Keys() []string {
	return v.keys
}

// Value returns the displayed value for a key.
func (v *View) Value(key string) string {
	return v.values[key]
}

// SelectedKey returns the currently selected key.
func (v *View) SelectedKey() string {
	if v.selected < len(v.keys) {
		return v.keys[v.selected]
	}
	return ""
}

// Editing returns whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
