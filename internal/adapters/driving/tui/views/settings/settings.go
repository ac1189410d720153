// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionCompany
	SectionFormat
	SectionDirectory
)

// overviewItems is the number of editable rows on the overview.
const overviewItems = 3

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error
	saved    bool

	// Navigation state
	section  Section
	selected int

	companyInput   textinput.Model
	directoryInput textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	companyInput := textinput.New()
	companyInput.Placeholder = domain.DefaultCompanyName
	companyInput.CharLimit = 128

	directoryInput := textinput.New()
	directoryInput.Placeholder = "current directory"
	directoryInput.CharLimit = 512

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		companyInput:    companyInput,
		directoryInput:  directoryInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
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
		v.section = SectionOverview
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEsc {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.closeSection()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionFormat:
		return v.handleFormatKeys(msg)
	case SectionCompany:
		return v.handleInputKeys(msg, &v.companyInput, v.saveCompany)
	case SectionDirectory:
		return v.handleInputKeys(msg, &v.directoryInput, v.saveDirectory)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < overviewItems-1 {
			v.selected++
		}
	case keyEnter:
		v.saved = false
		return v, v.openSection(Section(v.selected + 1))
	}
	return v, nil
}

func (v *View) handleFormatKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	formats := domain.AllOutputFormats()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(formats)-1 {
			v.selected++
		}
	case keyEnter:
		return v, v.saveFormat(formats[v.selected])
	}
	return v, nil
}

func (v *View) handleInputKeys(msg tea.KeyMsg, in *textinput.Model, save func(string) tea.Cmd) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		return v, save(strings.TrimSpace(in.Value()))
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return v, cmd
}

// openSection switches to an edit section seeded with the current value.
func (v *View) openSection(section Section) tea.Cmd {
	v.section = section
	switch section {
	case SectionCompany:
		if v.settings != nil {
			v.companyInput.SetValue(v.settings.Branding.CompanyName)
		}
		v.companyInput.CursorEnd()
		return v.companyInput.Focus()
	case SectionDirectory:
		if v.settings != nil {
			v.directoryInput.SetValue(v.settings.Output.Directory)
		}
		v.directoryInput.CursorEnd()
		return v.directoryInput.Focus()
	case SectionFormat:
		v.selected = v.formatIndex()
	case SectionOverview:
	}
	return nil
}

func (v *View) closeSection() {
	v.selected = int(v.section) - 1
	if v.selected < 0 {
		v.selected = 0
	}
	v.section = SectionOverview
	v.companyInput.Blur()
	v.directoryInput.Blur()
}

func (v *View) saveCompany(name string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: v.settingsService.SetCompanyName(name)}
	}
}

func (v *View) saveDirectory(dir string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: v.settingsService.SetOutputDirectory(dir)}
	}
}

func (v *View) saveFormat(format domain.OutputFormat) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: v.settingsService.SetOutputFormat(format)}
	}
}

// formatIndex returns the index of the current output format.
func (v *View) formatIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, f := range domain.AllOutputFormats() {
		if f == v.settings.Output.Format {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionCompany:
		b.WriteString(v.renderInput("Company Name", "Printed in the form header and used in file names.", v.companyInput))
	case SectionDirectory:
		b.WriteString(v.renderInput("Output Directory", "Leave empty to save in the current directory.", v.directoryInput))
	case SectionFormat:
		b.WriteString(v.renderFormatSelect())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	if v.settings == nil {
		return v.styles.Muted.Render("No settings loaded") + "\n"
	}

	dir := v.settings.Output.Directory
	if dir == "" {
		dir = "(current directory)"
	}
	rows := []struct{ label, value string }{
		{"Company Name", v.settings.Branding.CompanyName},
		{"Output Format", v.settings.Output.Format.Description()},
		{"Output Directory", dir},
	}

	var b strings.Builder
	for i, row := range rows {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%-18s %s", indicator, row.label+":", row.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	procs := strings.Join(v.settings.Pipeline.Processors, ", ")
	if procs == "" {
		procs = "(none)"
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Text clean-up: %s", procs)))
	b.WriteString("\n")

	if v.saved {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render("Settings saved."))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderInput(title, hint string, in textinput.Model) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(in.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(hint))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderFormatSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Output Format"))
	b.WriteString("\n\n")

	for i, format := range domain.AllOutputFormats() {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		current := ""
		if v.settings != nil && format == v.settings.Output.Format {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s", indicator, format.Description())
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString(current)
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionFormat:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionCompany, SectionDirectory:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	default:
		return ""
	}
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.saved = false
	v.companyInput.SetValue("")
	v.companyInput.Blur()
	v.directoryInput.SetValue("")
	v.directoryInput.Blur()
}
