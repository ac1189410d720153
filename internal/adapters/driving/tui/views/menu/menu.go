// Package menu provides the start screen of the TUI.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// recentLimit caps the recent forms panel.
const recentLimit = 5

// Entry is a selectable line on the start screen.
type Entry struct {
	Label  string
	Hint   string
	Target messages.ViewType
	Exit   bool
}

// View is the start screen: actions plus the last few generated forms.
type View struct {
	styles  *styles.Styles
	entries []Entry
	cursor  int
	company string
	recent  []domain.FormRecord
	width   int
	height  int
	ready   bool
}

// NewView creates the start screen.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		entries: []Entry{
			{Label: "New Order Form", Hint: "customer, terms, products and services", Target: messages.ViewWizard},
			{Label: "Settings", Hint: "seller name, output format and folder", Target: messages.ViewSettings},
			{Label: "Help", Hint: "keyboard shortcuts", Target: messages.ViewHelp},
			{Label: "Quit", Exit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements the view lifecycle; the start screen needs no commands.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the start screen.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.SettingsLoaded:
		if msg.Err == nil && msg.Settings != nil {
			v.company = msg.Settings.Branding.CompanyName
		}

	case messages.HistoryLoaded:
		// A failed lookup leaves the previous list in place.
		if msg.Err == nil {
			v.recent = msg.Records
			if len(v.recent) > recentLimit {
				v.recent = v.recent[:recentLimit]
			}
		}

	case tea.KeyMsg:
		return v, v.handleKey(msg.String())
	}

	return v, nil
}

func (v *View) handleKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		v.cursor = (v.cursor - 1 + len(v.entries)) % len(v.entries)
	case "down", "j":
		v.cursor = (v.cursor + 1) % len(v.entries)
	case "enter":
		return v.activate(v.cursor)
	case "q":
		return tea.Quit
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(v.entries) {
			v.cursor = n - 1
			return v.activate(v.cursor)
		}
	}
	return nil
}

func (v *View) activate(i int) tea.Cmd {
	entry := v.entries[i]
	if entry.Exit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: entry.Target}
	}
}

// View renders the start screen.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Order Form"))
	b.WriteString("\n\n")

	tagline := "Build order forms by hand or from an existing document"
	if v.company != "" {
		tagline = v.company + " - " + tagline
	}
	b.WriteString(v.styles.Muted.Render(tagline))
	b.WriteString("\n\n")

	for i, entry := range v.entries {
		prefix := fmt.Sprintf("  %d ", i+1)
		label := v.styles.Normal.Render(entry.Label)
		if i == v.cursor {
			prefix = fmt.Sprintf("> %d ", i+1)
			label = v.styles.Title.Render(entry.Label)
		}
		b.WriteString(prefix + label)
		if entry.Hint != "" {
			b.WriteString(v.styles.Muted.Render("  " + entry.Hint))
		}
		b.WriteString("\n")
	}

	if len(v.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Recent forms"))
		b.WriteString("\n")
		for _, r := range v.recent {
			line := fmt.Sprintf("  %s  %-24s %2d services  $%s",
				r.CreatedAt.Format("2006-01-02"), truncate(r.Customer, 24), r.Services, r.Total.StringFixed(2))
			b.WriteString(v.styles.Muted.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] move  [1-4 or enter] open  [q] quit"))

	return b.String()
}

func truncate(s string, n int) string {
	if s == "" {
		return "(no customer)"
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the index under the cursor.
func (v *View) Selected() int {
	return v.cursor
}

// Recent returns the forms shown in the recent panel.
func (v *View) Recent() []domain.FormRecord {
	return v.recent
}
