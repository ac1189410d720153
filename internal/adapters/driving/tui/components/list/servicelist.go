// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// ServiceList displays the services table as a navigable list.
type ServiceList struct {
	items    []domain.ServiceLineItem
	totals   []decimal.Decimal
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewServiceList creates a new service list component.
func NewServiceList(s *styles.Styles) *ServiceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ServiceList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the service list.
func (l *ServiceList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ServiceList) Update(msg tea.Msg) (*ServiceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the table with one line per row.
func (l *ServiceList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("No services selected")
	}

	serviceWidth := l.width - 46
	if serviceWidth < 16 {
		serviceWidth = 16
	}

	lines := make([]string, 0, len(l.items)+2)
	header := fmt.Sprintf("  %-*s %-20s %14s", serviceWidth, "Service", "Annual Usage", "Line Total")
	lines = append(lines, l.styles.Subtitle.Render(header), "")

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, serviceWidth))
	}
	return strings.Join(lines, "\n")
}

func (l *ServiceList) renderRow(index, serviceWidth int) string {
	item := l.items[index]

	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	usage := item.AnnualUsageCommitment
	if item.Unit != "" && !item.IsSupport() {
		usage += " " + item.Unit
	}

	fee := item.AnnualServiceFee
	if index < len(l.totals) {
		fee = l.totals[index]
	}

	line := fmt.Sprintf("%s%-*s %-20s %14s",
		indicator,
		serviceWidth, truncate(item.Service, serviceWidth),
		truncate(usage, 20),
		domain.FormatMoney(fee),
	)
	if index == l.selected {
		return l.styles.Selected.Render(line)
	}
	return l.styles.Normal.Render(line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// SetItems replaces the rows and their computed totals. The selection is
// kept when it still points at a row.
func (l *ServiceList) SetItems(items []domain.ServiceLineItem, totals []decimal.Decimal) {
	l.items = items
	l.totals = totals
	if l.selected >= len(items) {
		l.selected = len(items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Items returns the current rows.
func (l *ServiceList) Items() []domain.ServiceLineItem {
	return l.items
}

// Selected returns the index of the selected row.
func (l *ServiceList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *ServiceList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// SelectedItem returns the selected row. ok is false when the list is empty.
func (l *ServiceList) SelectedItem() (domain.ServiceLineItem, bool) {
	if len(l.items) == 0 {
		return domain.ServiceLineItem{}, false
	}
	return l.items[l.selected], true
}

// MoveUp moves selection up.
func (l *ServiceList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ServiceList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ServiceList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *ServiceList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *ServiceList) Height() int {
	return l.height
}

// Count returns the number of rows.
func (l *ServiceList) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *ServiceList) IsEmpty() bool {
	return len(l.items) == 0
}
