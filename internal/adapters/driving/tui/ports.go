// Package tui provides an interactive terminal user interface for filling in
// order forms. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sessions creates order form sessions for the wizard.
	Sessions driving.SessionFactory

	// Settings manages application settings.
	Settings driving.SettingsService

	// History records generated forms. Optional.
	History driving.HistoryService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(sessions driving.SessionFactory, settings driving.SettingsService) *Ports {
	return &Ports{
		Sessions: sessions,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Sessions == nil {
		return ErrMissingSessionFactory
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
