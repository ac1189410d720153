package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Computed holds values derived from the form. It is rebuilt after every
// mutation and never edited directly.
type Computed struct {
	// EndDate is set when both start date and term are known.
	EndDate *time.Time

	// LineTotals has one entry per line item, in table order.
	LineTotals []decimal.Decimal

	// GrandTotal is the sum of LineTotals.
	GrandTotal decimal.Decimal

	// ExcessUsageRate is the overage price for the rated row, or "N/A".
	ExcessUsageRate string

	// UsageTerms is drafted from the products on the services table,
	// paragraphs separated by a blank line. Empty when no product has
	// standard terms.
	UsageTerms string
}

// OrderForm is the validated snapshot handed to a renderer.
type OrderForm struct {
	// ID identifies the session that produced the form.
	ID string

	// CompanyName is the seller shown in the header.
	CompanyName string

	// Values holds effective values: set fields plus schema defaults.
	Values map[string]Value

	// LineItems is the services table in display order.
	LineItems []ServiceLineItem

	// Computed holds the derived values for LineItems.
	Computed Computed

	// GeneratedAt is when the form was produced.
	GeneratedAt time.Time
}

// Display returns the display text of a field, or "" when unset.
func (f OrderForm) Display(name string) string {
	v, ok := f.Values[name]
	if !ok {
		return ""
	}
	return v.Display()
}
