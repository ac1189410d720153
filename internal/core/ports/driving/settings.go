package driving

import "github.com/custodia-labs/orderform-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCompanyName updates the seller name printed on forms.
	SetCompanyName(name string) error

	// SetOutputDirectory updates where generated forms are written.
	SetOutputDirectory(dir string) error

	// SetOutputFormat updates the default renderer.
	SetOutputFormat(format domain.OutputFormat) error

	// SetProcessors updates the text clean-up pipeline.
	SetProcessors(names []string) error

	// Set updates a single setting by its config key.
	Set(key, value string) error

	// Validate checks that current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
