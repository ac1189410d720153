// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewWizard is the three step order form wizard.
	ViewWizard
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewWizard:
		return "wizard"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SessionStarted carries a fresh order session.
type SessionStarted struct {
	Session driving.OrderSession
	Err     error
}

// DocumentImported signals a document was read and merged into the form.
type DocumentImported struct {
	Path   string
	Result *driving.ImportResult
	Err    error
}

// FormGenerated signals the order form was rendered and saved.
type FormGenerated struct {
	Path string
	Form *domain.OrderForm
	Err  error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// HistoryLoaded carries the most recently generated order forms.
type HistoryLoaded struct {
	Records []domain.FormRecord
	Err     error
}
