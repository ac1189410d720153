package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/views/wizard"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap is shared by the wizard and the help screen.
	keymap *keymap.KeyMap

	// menuView is the main navigation menu.
	menuView *menu.View

	// wizardView is the order form wizard.
	wizardView *wizard.View

	// settingsView is the settings configuration view component.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		wizardView:   wizard.NewView(s, km, ports.Sessions, ports.Settings).WithHistory(ports.History),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx == nil {
		return a
	}
	a.ctx = ctx
	a.wizardView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("orderform - Order Forms"),
		a.loadSettings(),
		a.loadHistory(),
	)
}

// loadSettings fetches settings so the menu can show the company name.
func (a *App) loadSettings() tea.Cmd {
	return func() tea.Msg {
		s, err := a.ports.Settings.Get()
		return messages.SettingsLoaded{Settings: s, Err: err}
	}
}

// loadHistory fetches the recent forms panel. Without a history port it
// does nothing.
func (a *App) loadHistory() tea.Cmd {
	if a.ports.History == nil {
		return nil
	}
	return func() tea.Msg {
		records, err := a.ports.History.List(a.ctx, 5)
		return messages.HistoryLoaded{Records: records, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewWizard:
			a.wizardView, cmd = a.wizardView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewWizard:
			return a, a.wizardView.Resume()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu:
			return a, tea.Batch(a.loadSettings(), a.loadHistory())
		case messages.ViewHelp:
		}
		return a, nil

	case messages.SessionStarted, messages.DocumentImported, messages.FormGenerated:
		a.wizardView, cmd = a.wizardView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		a.menuView, _ = a.menuView.Update(msg)
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.HistoryLoaded:
		a.menuView, _ = a.menuView.Update(msg)
		return a, nil

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blinks) to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewWizard:
		a.wizardView, cmd = a.wizardView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewWizard:
		return a.wizardView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders every key binding grouped by where it applies.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")
	for _, section := range a.keymap.Sections() {
		b.WriteString("\n")
		b.WriteString(a.styles.Subtitle.Render(section.Title))
		b.WriteString("\n")
		for _, binding := range section.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("menu: 1-4 open an option directly  [esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.wizardView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
