// Package settings provides the store settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings service not available")

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionBackend
	SectionEdit
)

// Field is an editable row of the overview.
type Field int

const (
	FieldBackend Field = iota
	FieldURI
	FieldDatabase
	FieldCollection
)

var fieldLabels = []string{"Backend", "URI", "Database", "Collection"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return "Unknown"
	}
	return fieldLabels[f]
}

const (
	keyUp    = "up"
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View is the store settings view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    bool

	section  Section
	selected int
	editing  Field
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 50

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		input:           ti,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.saved = true
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.section {
	case SectionBackend:
		return v.handleBackendKeys(msg)
	case SectionEdit:
		return v.handleEditKeys(msg)
	case SectionOverview:
	}
	return v.handleOverviewKeys(msg)
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBooks}
		}
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(fieldLabels)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		v.saved = false
		field := Field(v.selected)
		if field == FieldBackend {
			v.section = SectionBackend
			v.selected = v.backendIndex()
			return v, nil
		}
		v.section = SectionEdit
		v.editing = field
		v.input.SetValue(v.fieldValue(field))
		v.input.CursorEnd()
		return v, v.input.Focus()
	}
	return v, nil
}

func (v *View) handleBackendKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	backends := domain.AllStoreBackends()

	switch msg.String() {
	case keyEsc:
		v.backToOverview(FieldBackend)
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(backends)-1 {
			v.selected++
		}
	case keyEnter:
		backend := backends[v.selected]
		v.backToOverview(FieldBackend)
		return v, v.save(func(svc driving.SettingsService) error {
			return svc.SetBackend(backend)
		})
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.backToOverview(v.editing)
		return v, nil
	case keyEnter:
		value := strings.TrimSpace(v.input.Value())
		field := v.editing
		v.backToOverview(field)
		return v, v.save(func(svc driving.SettingsService) error {
			switch field {
			case FieldURI:
				return svc.SetURI(value)
			case FieldDatabase:
				return svc.SetDatabase(value)
			case FieldCollection:
				return svc.SetCollection(value)
			case FieldBackend:
			}
			return fmt.Errorf("%w: field %s is not editable as text", domain.ErrInvalidInput, field)
		})
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) backToOverview(field Field) {
	v.section = SectionOverview
	v.selected = int(field)
	v.input.Blur()
}

func (v *View) save(apply func(driving.SettingsService) error) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: apply(svc)}
	}
}

func (v *View) backendIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, b := range domain.AllStoreBackends() {
		if b == v.settings.Store.Backend {
			return i
		}
	}
	return 0
}

func (v *View) fieldValue(field Field) string {
	if v.settings == nil {
		return ""
	}
	store := v.settings.Store
	switch field {
	case FieldBackend:
		return store.Backend.String()
	case FieldURI:
		return store.URI
	case FieldDatabase:
		return store.Database
	case FieldCollection:
		return store.Collection
	}
	return ""
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

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n")
		return b.String()
	}

	switch v.section {
	case SectionBackend:
		b.WriteString(v.renderBackendSelect())
	case SectionEdit:
		b.WriteString(v.renderEdit())
	case SectionOverview:
		b.WriteString(v.renderOverview())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Catalog Store"))
	b.WriteString("\n\n")

	for i, label := range fieldLabels {
		field := Field(i)
		value := v.fieldValue(field)
		switch field {
		case FieldBackend:
			value = v.settings.Store.Backend.Description()
		case FieldURI:
			value = domain.RedactURI(value)
		case FieldDatabase, FieldCollection:
		}

		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%-11s %s", indicator, label+":", value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
		b.WriteString("\n")
	}
	if v.saved {
		b.WriteString(v.styles.Muted.Render("Saved. Changes apply the next time libris starts."))
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderBackendSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Store Backend"))
	b.WriteString("\n\n")

	for i, backend := range domain.AllStoreBackends() {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		current := ""
		if backend == v.settings.Store.Backend {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s%s", indicator, backend.Description(), current)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")

		if backend.RequiresURI() {
			b.WriteString(v.styles.Muted.Render("    Requires: connection URI"))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (v *View) renderEdit() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Edit " + v.editing.String()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionBackend:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionEdit:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	case SectionOverview:
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	v.input.Width = inputWidth
}

// Reset returns the view to the overview.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.saved = false
	v.err = nil
	v.input.Blur()
	v.input.SetValue("")
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Selected returns the selected row within the active section.
func (v *View) Selected() int {
	return v.selected
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
