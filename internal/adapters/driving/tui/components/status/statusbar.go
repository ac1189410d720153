// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/styles"
)

// State represents the current wizard state for display.
type State string

const (
	StateReady      State = "ready"
	StateImporting  State = "importing"
	StateGenerating State = "generating"
	StateError      State = "error"
	StateDone       State = "done"
)

// Bar displays the wizard status, the running total and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	step    string
	total   string
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages. The bar is passive and changed
// through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var parts []string
	if s.step != "" {
		parts = append(parts, s.styles.Normal.Render(s.step))
	}

	switch s.state {
	case StateImporting:
		parts = append(parts, s.styles.Muted.Render("Importing..."))
	case StateGenerating:
		parts = append(parts, s.styles.Muted.Render("Generating..."))
	case StateError:
		if s.message != "" {
			parts = append(parts, s.styles.Error.Render("Error: "+s.message))
		} else {
			parts = append(parts, s.styles.Error.Render("Error"))
		}
	case StateDone:
		parts = append(parts, s.styles.Success.Render(s.messageOr("Saved")))
	case StateReady:
		if s.message != "" {
			parts = append(parts, s.styles.Muted.Render(s.message))
		}
	}

	if s.total != "" {
		parts = append(parts, s.styles.Total.Render("Total "+s.total))
	}
	if len(parts) == 0 {
		return s.styles.Muted.Render("Ready")
	}
	return strings.Join(parts, s.styles.Muted.Render(" · "))
}

func (s *Bar) renderRight() string {
	bindings := s.hints
	if len(bindings) == 0 {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func (s *Bar) messageOr(fallback string) string {
	if s.message != "" {
		return s.message
	}
	return fallback
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetStep sets the step label, e.g. "Step 2/3 Terms".
func (s *Bar) SetStep(step string) {
	s.step = step
}

// Step returns the step label.
func (s *Bar) Step() string {
	return s.step
}

// SetTotal sets the formatted grand total. Empty hides it.
func (s *Bar) SetTotal(total string) {
	s.total = total
}

// Total returns the formatted grand total.
func (s *Bar) Total() string {
	return s.total
}

// SetHints replaces the keybinding hints. Nil falls back to the short help.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.step = ""
	s.total = ""
	s.hints = nil
}
