package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCompanyName     = "branding.company_name"
	keyOutputDirectory = "output.directory"
	keyOutputFormat    = "output.format"
	keyProcessors      = "extraction.processors"
)

// SettingKeys lists the keys accepted by `settings set`.
func SettingKeys() []string {
	return []string{keyCompanyName, keyOutputDirectory, keyOutputFormat, keyProcessors}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Branding: domain.BrandingSettings{
			CompanyName: s.getString(keyCompanyName, defaults.Branding.CompanyName),
		},
		Output: domain.OutputSettings{
			Directory: s.configStore.GetString(keyOutputDirectory), // Empty means working directory
			Format:    s.getOutputFormat(defaults.Output.Format),
		},
		Pipeline: defaults.Pipeline,
	}
	if procs := s.configStore.GetStringSlice(keyProcessors); procs != nil {
		settings.Pipeline.Processors = procs
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyCompanyName, settings.Branding.CompanyName); err != nil {
		return fmt.Errorf("save company name: %w", err)
	}
	if err := s.configStore.Set(keyOutputDirectory, settings.Output.Directory); err != nil {
		return fmt.Errorf("save output directory: %w", err)
	}
	if err := s.configStore.Set(keyOutputFormat, settings.Output.Format.String()); err != nil {
		return fmt.Errorf("save output format: %w", err)
	}
	if err := s.configStore.Set(keyProcessors, settings.Pipeline.Processors); err != nil {
		return fmt.Errorf("save processors: %w", err)
	}
	return nil
}

// SetCompanyName updates the seller name printed on forms.
func (s *SettingsService) SetCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: company name cannot be empty", domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Branding.CompanyName = name
	return s.Save(settings)
}

// SetOutputDirectory updates where generated forms are written.
func (s *SettingsService) SetOutputDirectory(dir string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Output.Directory = strings.TrimSpace(dir)
	return s.Save(settings)
}

// SetOutputFormat updates the default renderer.
func (s *SettingsService) SetOutputFormat(format domain.OutputFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: output format %q", domain.ErrInvalidInput, format)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Output.Format = format
	return s.Save(settings)
}

// SetProcessors updates the text clean-up pipeline.
func (s *SettingsService) SetProcessors(names []string) error {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Pipeline.Processors = cleaned
	return s.Save(settings)
}

// Set updates a single setting by key, as used by `settings set`.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keyCompanyName:
		return s.SetCompanyName(value)
	case keyOutputDirectory:
		return s.SetOutputDirectory(value)
	case keyOutputFormat:
		return s.SetOutputFormat(domain.OutputFormat(strings.ToLower(strings.TrimSpace(value))))
	case keyProcessors:
		return s.SetProcessors(strings.Split(value, ","))
	default:
		return fmt.Errorf("%w: unknown setting %q (known: %s)", domain.ErrInvalidInput, key, strings.Join(SettingKeys(), ", "))
	}
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if strings.TrimSpace(settings.Branding.CompanyName) == "" {
		return fmt.Errorf("%w: company name is not set", domain.ErrInvalidInput)
	}
	if !settings.Output.Format.IsValid() {
		return fmt.Errorf("%w: output format %q", domain.ErrInvalidInput, settings.Output.Format)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getOutputFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	val := s.configStore.GetString(keyOutputFormat)
	if val == "" {
		return defaultVal
	}
	format := domain.OutputFormat(val)
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
