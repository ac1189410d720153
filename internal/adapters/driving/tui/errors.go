package tui

import "errors"

// Errors returned by Ports.Validate and NewApp.
var (
	ErrInvalidPorts           = errors.New("tui: no ports supplied")
	ErrMissingSessionFactory  = errors.New("tui: session factory is required")
	ErrMissingSettingsService = errors.New("tui: settings service is required")
)
