package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductOptions(t *testing.T) {
	assert.Contains(t, ProductOptions(WarehouseCloud), ProductExperimentation)
	assert.Contains(t, ProductOptions(WarehouseNative), "Experimentation: Analysis Only")
	assert.NotContains(t, ProductOptions(WarehouseNative), ProductExperimentation)
	assert.Equal(t, []string{ProductWarehouseNative, ProductPlatformFee}, ProductOptions(WarehouseCredit))
	assert.Nil(t, ProductOptions("On Prem"))
}

func TestDefaultUnitAndUsage(t *testing.T) {
	tests := []struct {
		service string
		unit    string
		usage   string
	}{
		{"Experimentation", "Billable Events", ""},
		{"Experimentation: Analysis Only", "Billable Events", ""},
		{"Session Replay", "Sessions", UnitNotApplicable},
		{"Platform Fee", UnitNotApplicable, UnitNotApplicable},
		{"Premium Support", UnitNotApplicable, UnitNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			assert.Equal(t, tt.unit, DefaultUnit(tt.service))
			assert.Equal(t, tt.usage, DefaultUsage(tt.service))
		})
	}
}

func TestSupportService(t *testing.T) {
	name := SupportServiceName("Premium")
	assert.Equal(t, "Premium Support", name)
	assert.True(t, IsSupportService(name))
	assert.False(t, IsSupportService("Platform Fee"))
	assert.True(t, NewLineItem(name).IsSupport())
}

func TestNewLineItem(t *testing.T) {
	item := NewLineItem("Session Replay")
	assert.Equal(t, DefaultSubscriptionPeriod, item.SubscriptionPeriod)
	assert.Equal(t, "Sessions", item.Unit)
	assert.True(t, item.AnnualServiceFee.IsZero())
	assert.True(t, item.Equal(NewLineItem("Session Replay")))
	assert.False(t, item.Equal(NewLineItem("Platform Fee")))
}

func TestSelectedProducts(t *testing.T) {
	items := []ServiceLineItem{
		NewLineItem("Session Replay"),
		NewLineItem("Premium Support"),
		NewLineItem(ProductPlatformFee),
		NewLineItem("Custom Work"),
	}

	assert.Equal(t, []string{ProductPlatformFee, ProductSessionReplay}, SelectedProducts(items, WarehouseCloud))
	assert.Equal(t, []string{ProductPlatformFee}, SelectedProducts(items, WarehouseCredit))
	assert.Nil(t, SelectedProducts(items, "Unknown"))
	assert.Nil(t, SelectedProducts(nil, WarehouseCloud))
}

func TestNormalizeSpecialTerms(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"None", nil},
		{"price cap", []string{"price cap"}},
		{" No Auto-Renewal , price cap,no auto-renewal", []string{"no auto-renewal", "price cap"}},
		{"none, one time discount,, ", []string{"one time discount"}},
		{"ramp pricing, Ramp Pricing", []string{"ramp pricing"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSpecialTerms(tt.raw))
		})
	}
}

func TestSpecialTermsField(t *testing.T) {
	def, err := DefaultSchema().Get(FieldSpecialTerms)
	require.NoError(t, err)

	assert.Equal(t, StepProducts, def.Step)
	assert.False(t, def.Required)
	for _, opt := range SpecialTermOptions() {
		assert.Contains(t, def.Help, opt)
	}
}
