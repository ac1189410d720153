package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Branding.CompanyName, settings.Branding.CompanyName)
	assert.Equal(t, defaults.Output.Format, settings.Output.Format)
	assert.Empty(t, settings.Output.Directory)
	assert.Equal(t, defaults.Pipeline.Processors, settings.Pipeline.Processors)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("branding.company_name", "Seller Co")
	_ = store.Set("output.directory", "/tmp/forms")
	_ = store.Set("output.format", "text")
	_ = store.Set("extraction.processors", []string{"linetrim"})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "Seller Co", settings.Branding.CompanyName)
	assert.Equal(t, "/tmp/forms", settings.Output.Directory)
	assert.Equal(t, domain.OutputFormatText, settings.Output.Format)
	assert.Equal(t, []string{"linetrim"}, settings.Pipeline.Processors)
}

func TestSettingsService_Get_InvalidFormatReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("output.format", "docx")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.OutputFormatPDF, settings.Output.Format)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	in := domain.DefaultAppSettings()
	in.Branding.CompanyName = "Other"
	in.Output.Format = domain.OutputFormatText
	in.Pipeline.Processors = []string{"collapse"}

	require.NoError(t, service.Save(&in))

	out, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestSettingsService_SetCompanyName(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetCompanyName("  Seller Co "))
	settings, _ := service.Get()
	assert.Equal(t, "Seller Co", settings.Branding.CompanyName)

	err := service.SetCompanyName("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetOutputFormat(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetOutputFormat(domain.OutputFormatText))
	settings, _ := service.Get()
	assert.Equal(t, domain.OutputFormatText, settings.Output.Format)

	err := service.SetOutputFormat(domain.OutputFormat("html"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetProcessorsDropsBlanks(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetProcessors([]string{" linetrim", "", "collapse "}))
	settings, _ := service.Get()
	assert.Equal(t, []string{"linetrim", "collapse"}, settings.Pipeline.Processors)
}

func TestSettingsService_SetByKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"branding.company_name", "Acme Sales", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "Acme Sales", s.Branding.CompanyName)
		}},
		{"output.directory", "./out", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "./out", s.Output.Directory)
		}},
		{"output.format", " TEXT ", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.OutputFormatText, s.Output.Format)
		}},
		{"extraction.processors", "collapse,linetrim", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, []string{"collapse", "linetrim"}, s.Pipeline.Processors)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, service.Set(tt.key, tt.value))
			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}

	err := service.Set("search.mode", "hybrid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "branding.company_name")
}

func TestSettingsService_Validate(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.NoError(t, service.Validate())
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
