package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewFormRecord(t *testing.T) {
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	generated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	form := &OrderForm{
		ID:          "session-1",
		CompanyName: "Acme Analytics",
		Values: map[string]Value{
			FieldCustomerName: TextValue("Globex Corp"),
		},
		LineItems: []ServiceLineItem{NewLineItem("Experimentation"), NewLineItem("Platform Fee")},
		Computed: Computed{
			EndDate:    &end,
			GrandTotal: decimal.NewFromInt(34000),
		},
		GeneratedAt: generated,
	}

	rec := NewFormRecord(form, OutputFormatPDF, "/tmp/forms/globex.pdf")

	assert.Empty(t, rec.ID)
	assert.Equal(t, "session-1", rec.SessionID)
	assert.Equal(t, "Globex Corp", rec.Customer)
	assert.Equal(t, "Acme Analytics", rec.CompanyName)
	assert.Equal(t, OutputFormatPDF, rec.Format)
	assert.Equal(t, "/tmp/forms/globex.pdf", rec.Path)
	assert.Equal(t, 2, rec.Services)
	assert.True(t, rec.Total.Equal(decimal.NewFromInt(34000)))
	assert.Equal(t, &end, rec.EndDate)
	assert.Equal(t, generated, rec.CreatedAt)
}

func TestNewFormRecord_DefaultsCreatedAt(t *testing.T) {
	before := time.Now()

	rec := NewFormRecord(&OrderForm{}, OutputFormatText, "form.txt")

	assert.Empty(t, rec.Customer)
	assert.Zero(t, rec.Services)
	assert.False(t, rec.CreatedAt.Before(before))
}
