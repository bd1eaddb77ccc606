// Package addsource provides the add source wizard view for the TUI.
package addsource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/traitdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/traitdex/internal/core/domain"
	"github.com/custodia-labs/traitdex/internal/core/ports/driving"
)

// WizardStep tracks the current step in the wizard.
type WizardStep int

const (
	StepSelectConnector WizardStep = iota
	StepEnterConfig
	StepComplete
)

// View is the add source wizard view.
type View struct {
	styles            *styles.Styles
	sourceService     driving.SourceService
	connectorRegistry driving.ConnectorRegistry

	// Wizard state
	step       WizardStep
	connectors []domain.ConnectorType
	selected   int
	connector  *domain.ConnectorType

	// Config entry state: name input first, then one input per config key.
	nameInput    textinput.Model
	configInputs []textinput.Model
	configKeys   []string
	focusIndex   int

	added  *domain.Source
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new add source wizard view.
func NewView(
	s *styles.Styles,
	sourceService driving.SourceService,
	connectorRegistry driving.ConnectorRegistry,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	nameInput := textinput.New()
	nameInput.Placeholder = "Display name for the source"
	nameInput.CharLimit = 128

	return &View{
		styles:            s,
		sourceService:     sourceService,
		connectorRegistry: connectorRegistry,
		step:              StepSelectConnector,
		nameInput:         nameInput,
	}
}

// Init initialises the view and loads connectors.
func (v *View) Init() tea.Cmd {
	return v.loadConnectors()
}

// Reset returns the wizard to the connector selection step.
func (v *View) Reset() {
	v.step = StepSelectConnector
	v.selected = 0
	v.connector = nil
	v.configInputs = nil
	v.configKeys = nil
	v.nameInput.SetValue("")
	v.added = nil
	v.err = nil
}

// loadConnectors returns a command that loads available connectors.
func (v *View) loadConnectors() tea.Cmd {
	return func() tea.Msg {
		if v.connectorRegistry == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("connector registry not available")}
		}
		connectors := v.connectorRegistry.List()
		return connectorsLoaded{connectors: connectors}
	}
}

// connectorsLoaded is a message indicating connectors have been loaded.
type connectorsLoaded struct {
	connectors []domain.ConnectorType
}

// Update handles messages for the add source wizard.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case connectorsLoaded:
		v.connectors = msg.connectors
		return v, nil

	case messages.SourceAdded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.added = &msg.Source
		v.err = nil
		v.step = StepComplete
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		switch v.step {
		case StepSelectConnector:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSources}
			}
		case StepEnterConfig:
			v.step = StepSelectConnector
			v.err = nil
			return v, nil
		case StepComplete:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSources}
			}
		}
	}

	switch v.step {
	case StepSelectConnector:
		return v.handleConnectorSelect(msg)
	case StepEnterConfig:
		return v.handleConfigInput(msg)
	case StepComplete:
		return v.handleComplete(msg)
	}

	return v, nil
}

func (v *View) handleConnectorSelect(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.connectors)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(v.connectors) {
			connector := v.connectors[v.selected]
			v.connector = &connector
			v.step = StepEnterConfig
			return v, v.initConfigInputs()
		}
	}
	return v, nil
}

// initConfigInputs builds the name and config key inputs for the
// chosen connector.
func (v *View) initConfigInputs() tea.Cmd {
	if v.connector == nil {
		return nil
	}

	v.nameInput.SetValue("")

	v.configInputs = make([]textinput.Model, len(v.connector.ConfigKeys))
	v.configKeys = make([]string, len(v.connector.ConfigKeys))

	for i, key := range v.connector.ConfigKeys {
		ti := textinput.New()
		placeholder := key.Description
		if key.Default != "" {
			if placeholder != "" {
				placeholder = fmt.Sprintf("%s (default: %s)", placeholder, key.Default)
			} else {
				placeholder = fmt.Sprintf("default: %s", key.Default)
			}
		}
		ti.Placeholder = placeholder
		if key.Secret {
			ti.EchoMode = textinput.EchoPassword
		}
		ti.SetValue("")
		v.configInputs[i] = ti
		v.configKeys[i] = key.Key
	}
	v.focusIndex = 0

	return v.nameInput.Focus()
}

func (v *View) handleConfigInput(msg tea.KeyMsg) (*View, tea.Cmd) {
	inputCount := len(v.configInputs) + 1 // name input plus config inputs

	switch msg.String() {
	case "tab", "down":
		v.focusIndex++
		if v.focusIndex >= inputCount {
			v.focusIndex = 0
		}
		return v, v.updateFocus()
	case "shift+tab", "up":
		v.focusIndex--
		if v.focusIndex < 0 {
			v.focusIndex = inputCount - 1
		}
		return v, v.updateFocus()
	case "enter":
		if v.validateConfig() {
			return v, v.addSource()
		}
		return v, nil
	default:
		// Forward to the focused input
		var cmd tea.Cmd
		if v.focusIndex == 0 {
			v.nameInput, cmd = v.nameInput.Update(msg)
		} else if v.focusIndex-1 < len(v.configInputs) {
			v.configInputs[v.focusIndex-1], cmd = v.configInputs[v.focusIndex-1].Update(msg)
		}
		return v, cmd
	}
}

func (v *View) handleComplete(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "enter" {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSources}
		}
	}
	return v, nil
}

// updateFocus moves focus to the input at focusIndex.
func (v *View) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	if v.focusIndex == 0 {
		cmd = v.nameInput.Focus()
	} else {
		v.nameInput.Blur()
	}
	for i := range v.configInputs {
		if i == v.focusIndex-1 {
			cmd = v.configInputs[i].Focus()
		} else {
			v.configInputs[i].Blur()
		}
	}
	return cmd
}

// validateConfig checks the name and required config keys are filled.
func (v *View) validateConfig() bool {
	if v.connector == nil {
		return false
	}
	if strings.TrimSpace(v.nameInput.Value()) == "" {
		v.err = fmt.Errorf("name is required")
		return false
	}
	for i, key := range v.connector.ConfigKeys {
		if key.Required && key.Default == "" && strings.TrimSpace(v.configInputs[i].Value()) == "" {
			v.err = fmt.Errorf("%s is required", key.Label)
			return false
		}
	}
	v.err = nil
	return true
}

// collectConfig assembles the config map, applying defaults for
// untouched keys.
func (v *View) collectConfig() map[string]string {
	config := make(map[string]string, len(v.configKeys))
	for i, key := range v.configKeys {
		value := strings.TrimSpace(v.configInputs[i].Value())
		if value == "" {
			value = v.connector.ConfigKeys[i].Default
		}
		if value != "" {
			config[key] = value
		}
	}
	return config
}

// addSource returns a command that validates and persists the source.
func (v *View) addSource() tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil || v.connector == nil {
			return messages.SourceAdded{Err: fmt.Errorf("source service not available")}
		}

		ctx := context.Background()
		config := v.collectConfig()

		if err := v.sourceService.ValidateConfig(ctx, v.connector.ID, config); err != nil {
			return messages.SourceAdded{Err: err}
		}

		source := domain.Source{
			ID:        uuid.NewString(),
			Type:      v.connector.ID,
			Name:      strings.TrimSpace(v.nameInput.Value()),
			Config:    config,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := v.sourceService.Add(ctx, source); err != nil {
			return messages.SourceAdded{Err: err}
		}
		return messages.SourceAdded{Source: source}
	}
}

// View renders the add source wizard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add Source"))
	b.WriteString("\n\n")

	switch v.step {
	case StepSelectConnector:
		b.WriteString(v.renderConnectorSelect())
	case StepEnterConfig:
		b.WriteString(v.renderConfigEntry())
	case StepComplete:
		b.WriteString(v.renderComplete())
	}

	return b.String()
}

func (v *View) renderConnectorSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select a connector:"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if len(v.connectors) == 0 {
		b.WriteString(v.styles.Muted.Render("No connectors available."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	for i, connector := range v.connectors {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("%s%s", indicator, connector.Name)))
		} else {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s%s", indicator, connector.Name)))
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("    " + connector.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] back"))

	return b.String()
}

func (v *View) renderConfigEntry() string {
	var b strings.Builder

	if v.connector != nil {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Configure %s:", v.connector.Name)))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Normal.Render("Name"))
	b.WriteString("\n")
	b.WriteString(v.nameInput.View())
	b.WriteString("\n\n")

	for i, input := range v.configInputs {
		label := v.configKeys[i]
		if v.connector != nil && i < len(v.connector.ConfigKeys) {
			label = v.connector.ConfigKeys[i].Label
			if v.connector.ConfigKeys[i].Required {
				label += " *"
			}
		}
		b.WriteString(v.styles.Normal.Render(label))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] next field  [enter] add  [esc] back"))

	return b.String()
}

func (v *View) renderComplete() string {
	var b strings.Builder

	b.WriteString(v.styles.Success.Render("Source added."))
	b.WriteString("\n\n")

	if v.added != nil {
		b.WriteString(v.styles.Subtitle.Render("Name: "))
		b.WriteString(v.styles.Normal.Render(v.added.Name))
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Type: "))
		b.WriteString(v.styles.Normal.Render(v.added.Type))
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("ID: "))
		b.WriteString(v.styles.Muted.Render(v.added.ID))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] back to sources"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Step returns the current wizard step.
func (v *View) Step() WizardStep {
	return v.step
}

// Connectors returns the loaded connector types.
func (v *View) Connectors() []domain.ConnectorType {
	return v.connectors
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
