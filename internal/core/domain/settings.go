package domain

// OutputFormat selects the renderer used to produce the final document.
type OutputFormat string

// Available output formats.
const (
	// OutputFormatPDF renders a branded PDF order form.
	OutputFormatPDF OutputFormat = "pdf"

	// OutputFormatText renders a plain-text summary.
	OutputFormatText OutputFormat = "text"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatPDF, OutputFormatText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Extension returns the file extension, including the dot.
func (f OutputFormat) Extension() string {
	if f == OutputFormatText {
		return ".txt"
	}
	return ".pdf"
}

// Description returns a human-readable description of the format.
func (f OutputFormat) Description() string {
	switch f {
	case OutputFormatPDF:
		return "PDF (branded order form)"
	case OutputFormatText:
		return "Text (plain summary)"
	default:
		return unknownDescription
	}
}

// AllOutputFormats returns all available output formats.
func AllOutputFormats() []OutputFormat {
	return []OutputFormat{OutputFormatPDF, OutputFormatText}
}

// BrandingSettings holds the seller identity printed on forms.
type BrandingSettings struct {
	// CompanyName appears in the header and the output file name.
	CompanyName string
}

// OutputSettings controls where and how forms are written.
type OutputSettings struct {
	// Directory is where generated forms are saved. Empty means the
	// current working directory.
	Directory string

	// Format is the default renderer.
	Format OutputFormat
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Branding holds seller identity settings.
	Branding BrandingSettings

	// Output holds generation settings.
	Output OutputSettings

	// Pipeline holds the text clean-up applied before extraction.
	Pipeline PipelineConfig
}

// DefaultCompanyName is used until the user configures their own.
const DefaultCompanyName = "Statsig"

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Branding: BrandingSettings{CompanyName: DefaultCompanyName},
		Output:   OutputSettings{Format: OutputFormatPDF},
		Pipeline: DefaultPipelineConfig(),
	}
}

// PipelineConfig holds text processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration:
// normalise whitespace, then drop blank lines.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors:       []string{"collapse", "linetrim"},
		ProcessorConfigs: map[string]map[string]any{},
	}
}
