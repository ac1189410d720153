// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// Wizard bindings use control keys so they never collide with typing.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// NextField moves focus to the next input.
	NextField key.Binding

	// PrevField moves focus to the previous input.
	PrevField key.Binding

	// NextStep validates the current step and moves on.
	NextStep key.Binding

	// PrevStep returns to the previous step.
	PrevStep key.Binding

	// Import reads a document into the form.
	Import key.Binding

	// Toggle selects or deselects a product.
	Toggle key.Binding

	// RemoveRow deletes the selected service row.
	RemoveRow key.Binding

	// Generate renders and saves the order form.
	Generate key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		NextStep: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next step"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "prev step"),
		),
		Import: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "import document"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		RemoveRow: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "remove row"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// FieldsHelp returns keybindings shown while editing step fields.
func (k *KeyMap) FieldsHelp(canImport bool) []key.Binding {
	bindings := []key.Binding{k.NextField, k.NextStep, k.PrevStep}
	if canImport {
		bindings = append(bindings, k.Import)
	}
	return append(bindings, k.Back)
}

// ProductsHelp returns keybindings shown on the product checklist.
func (k *KeyMap) ProductsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.NextStep, k.PrevStep}
}

// ServicesHelp returns keybindings shown on the services table.
func (k *KeyMap) ServicesHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.RemoveRow, k.PrevStep, k.Generate}
}

// Section is a titled group of bindings on the help screen.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Sections groups every binding for the help screen, in the order a user
// meets them while filling in a form.
func (k *KeyMap) Sections() []Section {
	return []Section{
		{Title: "Navigation", Bindings: []key.Binding{k.Up, k.Down, k.Select, k.Back}},
		{Title: "Order Form", Bindings: []key.Binding{k.NextField, k.PrevField, k.NextStep, k.PrevStep, k.Import}},
		{Title: "Products and Services", Bindings: []key.Binding{k.Toggle, k.RemoveRow, k.Generate}},
		{Title: "Application", Bindings: []key.Binding{k.Help, k.Quit}},
	}
}

// Matches reports whether keyStr, as produced by tea.KeyMsg.String, is one
// of the binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
