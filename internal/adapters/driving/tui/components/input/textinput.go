// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/styles"
)

// FieldInput is a labelled single line input for one form field.
type FieldInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	name      string
	label     string
	help      string
	required  bool
	err       error
	width     int
}

// NewFieldInput creates an unfocused input for the named field.
func NewFieldInput(s *styles.Styles, name, label string) *FieldInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 40

	return &FieldInput{
		textinput: ti,
		styles:    s,
		name:      name,
		label:     label,
		width:     40,
	}
}

// Init initialises the input.
func (f *FieldInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *FieldInput) Update(msg tea.Msg) (*FieldInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label, the input and a hint or error line.
func (f *FieldInput) View() string {
	labelStyle := f.styles.Label
	if f.Focused() {
		labelStyle = f.styles.FocusedLabel
	}
	label := f.label
	if f.required {
		label += f.styles.Required.Render(" *")
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), f.textinput.View())

	var b strings.Builder
	b.WriteString(row)
	switch {
	case f.err != nil:
		b.WriteString("\n")
		b.WriteString(f.styles.Error.Render("  " + f.err.Error()))
	case f.Focused() && f.help != "":
		b.WriteString("\n")
		b.WriteString(f.styles.Help.Render("  " + f.help))
	}
	return b.String()
}

// Name returns the field name the input edits.
func (f *FieldInput) Name() string {
	return f.name
}

// Label returns the display label.
func (f *FieldInput) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *FieldInput) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (f *FieldInput) SetValue(value string) {
	f.textinput.SetValue(value)
	f.textinput.CursorEnd()
}

// SetPlaceholder sets the text shown while the input is empty.
func (f *FieldInput) SetPlaceholder(placeholder string) {
	f.textinput.Placeholder = placeholder
}

// Placeholder returns the text shown while the input is empty.
func (f *FieldInput) Placeholder() string {
	return f.textinput.Placeholder
}

// SetHelp sets the hint shown while the input is focused.
func (f *FieldInput) SetHelp(help string) {
	f.help = help
}

// SetRequired toggles the required marker.
func (f *FieldInput) SetRequired(required bool) {
	f.required = required
}

// Required reports whether the required marker is shown.
func (f *FieldInput) Required() bool {
	return f.required
}

// SetError shows err under the input. A nil error clears it.
func (f *FieldInput) SetError(err error) {
	f.err = err
}

// Err returns the error currently shown.
func (f *FieldInput) Err() error {
	return f.err
}

// Focus sets focus on the input.
func (f *FieldInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FieldInput) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FieldInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the total width including the label column.
func (f *FieldInput) SetWidth(width int) {
	f.width = width
	inputWidth := width - f.styles.Label.GetWidth() - 2
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *FieldInput) Width() int {
	return f.width
}

// Reset clears the value and the error.
func (f *FieldInput) Reset() {
	f.textinput.Reset()
	f.err = nil
}
