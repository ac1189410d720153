package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWizardStep_Navigation(t *testing.T) {
	next, ok := StepInputSource.Next()
	assert.True(t, ok)
	assert.Equal(t, StepTerms, next)

	next, ok = StepTerms.Next()
	assert.True(t, ok)
	assert.Equal(t, StepProducts, next)

	_, ok = StepProducts.Next()
	assert.False(t, ok)

	prev, ok := StepProducts.Prev()
	assert.True(t, ok)
	assert.Equal(t, StepTerms, prev)

	_, ok = StepInputSource.Prev()
	assert.False(t, ok)
}

func TestWizardStep_String(t *testing.T) {
	tests := []struct {
		step  WizardStep
		name  string
		title string
	}{
		{StepInputSource, "input_source", "Customer"},
		{StepTerms, "terms", "Terms"},
		{StepProducts, "products", "Products"},
		{WizardStep(9), "unknown", unknownDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.step.String())
			assert.Equal(t, tt.title, tt.step.Title())
		})
	}
	assert.False(t, WizardStep(9).IsValid())
	assert.Len(t, AllSteps(), 3)
}
