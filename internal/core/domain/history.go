package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormRecord is an entry in the history of generated order forms.
type FormRecord struct {
	// ID is the unique identifier of the record.
	ID string

	// SessionID is the wizard session that produced the form.
	SessionID string

	// Customer is the customer name printed on the form.
	Customer string

	// CompanyName is the seller shown in the form header.
	CompanyName string

	// Format is the rendering format of the saved file.
	Format OutputFormat

	// Path is where the form was written.
	Path string

	// Services is the number of line items on the form.
	Services int

	// Total is the grand total of the services table.
	Total decimal.Decimal

	// EndDate is the computed subscription end date, if known.
	EndDate *time.Time

	// CreatedAt is when the form was generated.
	CreatedAt time.Time
}

// NewFormRecord summarises a generated form for the history.
// The caller assigns ID.
func NewFormRecord(form *OrderForm, format OutputFormat, path string) FormRecord {
	created := form.GeneratedAt
	if created.IsZero() {
		created = time.Now()
	}
	return FormRecord{
		SessionID:   form.ID,
		Customer:    form.Display(FieldCustomerName),
		CompanyName: form.CompanyName,
		Format:      format,
		Path:        path,
		Services:    len(form.LineItems),
		Total:       form.Computed.GrandTotal,
		EndDate:     form.Computed.EndDate,
		CreatedAt:   created,
	}
}
