package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// OrderSession drives one order form through the wizard.
// A session is owned by a single caller and is not safe for concurrent use.
type OrderSession interface {
	// ID returns the session identifier.
	ID() string

	// Schema returns the field schema the session validates against.
	Schema() *domain.FieldSchema

	// Step returns the current wizard step.
	Step() domain.WizardStep

	// Advance moves to the next step once the current one validates.
	Advance() error

	// GoBack moves to the previous step.
	GoBack() error

	// CanAdvance reports whether Advance would succeed, with the findings
	// that block it otherwise.
	CanAdvance() (bool, *domain.ValidationError)

	// ImportDocument extracts fields from an uploaded file and merges them
	// into unset fields.
	ImportDocument(ctx context.Context, filename string, content []byte) (*ImportResult, error)

	// SetField stores a typed value, overriding anything extracted.
	SetField(name string, value domain.Value) error

	// SetFieldText parses user input into the field's type. Blank input
	// clears the field.
	SetFieldText(name, raw string) error

	// ClearField unsets a field.
	ClearField(name string) error

	// Value returns the set value of a field.
	Value(name string) (domain.Value, bool)

	// Effective returns the set value or the schema default.
	Effective(name string) (domain.Value, bool)

	// LineItems returns a copy of the services table.
	LineItems() []domain.ServiceLineItem

	// AddLineItem appends a row.
	AddLineItem(item domain.ServiceLineItem)

	// UpdateLineItem replaces the row at index.
	UpdateLineItem(index int, item domain.ServiceLineItem) error

	// RemoveLineItem deletes the row at index.
	RemoveLineItem(index int) error

	// SelectProducts rebuilds the table from product names and a support
	// tier, keeping values of rows that already exist.
	SelectProducts(products []string, supportTier string)

	// Computed returns the derived values.
	Computed() domain.Computed

	// Generate validates the final step and renders the form to w.
	Generate(ctx context.Context, w io.Writer) (*domain.OrderForm, error)

	// Format returns the format the session renders in.
	Format() domain.OutputFormat

	// OutputFilename returns the suggested file name for the rendered form.
	OutputFilename() string

	// Suggestion returns a value to offer for an empty field, such as the
	// first of next month for the start date.
	Suggestion(name string) (string, bool)
}

// SessionFactory creates fresh sessions.
type SessionFactory interface {
	// NewSession returns an empty session rendering in the given format.
	NewSession(format domain.OutputFormat) (OrderSession, error)
}
