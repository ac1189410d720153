package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

// Ensure OrderSession implements the interface.
var _ driving.OrderSession = (*OrderSession)(nil)

// OrderSession owns one form and its wizard for a single user.
type OrderSession struct {
	id         string
	form       *FormState
	wizard     *WizardController
	extraction driving.ExtractionService
	renderer   driven.DocumentRenderer
	company    string
	now        func() time.Time
}

// NewOrderSession creates an empty session. extraction may be nil when
// documents are never imported; renderer may be nil when the form is
// never generated.
func NewOrderSession(
	schema *domain.FieldSchema,
	extraction driving.ExtractionService,
	renderer driven.DocumentRenderer,
	company string,
) *OrderSession {
	form := NewFormState(schema)
	s := &OrderSession{
		id:         uuid.New().String(),
		form:       form,
		wizard:     NewWizardController(form),
		extraction: extraction,
		renderer:   renderer,
		company:    company,
		now:        time.Now,
	}
	s.wizard.SetIdentity(s.id, company)
	return s
}

// ID returns the session identifier.
func (s *OrderSession) ID() string { return s.id }

// Schema returns the field schema.
func (s *OrderSession) Schema() *domain.FieldSchema { return s.form.Schema() }

// Form exposes the underlying form state.
func (s *OrderSession) Form() *FormState { return s.form }

// Step returns the current wizard step.
func (s *OrderSession) Step() domain.WizardStep { return s.wizard.Current() }

// Advance moves to the next step once the current one validates.
func (s *OrderSession) Advance() error { return s.wizard.Advance() }

// GoBack moves to the previous step.
func (s *OrderSession) GoBack() error { return s.wizard.GoBack() }

// CanAdvance reports whether the current step validates.
func (s *OrderSession) CanAdvance() (bool, *domain.ValidationError) {
	verr := s.wizard.Validate(s.wizard.Current())
	return verr == nil, verr
}

// ImportDocument extracts fields from an upload and merges them into
// unset fields.
func (s *OrderSession) ImportDocument(ctx context.Context, filename string, content []byte) (*driving.ImportResult, error) {
	if s.extraction == nil {
		return nil, fmt.Errorf("%w: document import is not configured", domain.ErrUnsupportedType)
	}
	result, err := s.extraction.ExtractFile(ctx, filename, content)
	if err != nil {
		return nil, err
	}
	result.Merged = s.form.Merge(result.Extraction)
	extractLog.Info("%s: %d fields found, %d merged", filename, result.Extraction.Len(), len(result.Merged))
	return result, nil
}

// MergeText runs the heuristic over already extracted text and merges the
// result.
func (s *OrderSession) MergeText(text string) (domain.ExtractionResult, []string) {
	if s.extraction == nil {
		return domain.ExtractionResult{}, nil
	}
	result := s.extraction.Extract(text)
	return result, s.form.Merge(result)
}

// SetField stores a typed value.
func (s *OrderSession) SetField(name string, value domain.Value) error {
	return s.form.SetField(name, value)
}

// SetFieldText parses and stores user input.
func (s *OrderSession) SetFieldText(name, raw string) error {
	return s.form.SetFieldText(name, raw)
}

// ClearField unsets a field.
func (s *OrderSession) ClearField(name string) error { return s.form.ClearField(name) }

// Value returns the set value of a field.
func (s *OrderSession) Value(name string) (domain.Value, bool) { return s.form.Value(name) }

// Effective returns the set value or the schema default.
func (s *OrderSession) Effective(name string) (domain.Value, bool) { return s.form.Effective(name) }

// LineItems returns a copy of the services table.
func (s *OrderSession) LineItems() []domain.ServiceLineItem { return s.form.LineItems() }

// AddLineItem appends a row.
func (s *OrderSession) AddLineItem(item domain.ServiceLineItem) { s.form.AddLineItem(item) }

// UpdateLineItem replaces the row at index.
func (s *OrderSession) UpdateLineItem(index int, item domain.ServiceLineItem) error {
	return s.form.UpdateLineItem(index, item)
}

// RemoveLineItem deletes the row at index.
func (s *OrderSession) RemoveLineItem(index int) error { return s.form.RemoveLineItem(index) }

// SelectProducts rebuilds the services table from a product selection.
func (s *OrderSession) SelectProducts(products []string, supportTier string) {
	s.form.ReplaceLineItems(BuildLineItems(products, supportTier, s.form.LineItems()))
}

// Computed returns the derived values.
func (s *OrderSession) Computed() domain.Computed { return s.form.Computed() }

// Generate validates the final step and renders the form to w.
func (s *OrderSession) Generate(ctx context.Context, w io.Writer) (*domain.OrderForm, error) {
	return s.wizard.Generate(ctx, s.renderer, w)
}

// Format returns the output format of the session's renderer.
func (s *OrderSession) Format() domain.OutputFormat {
	if s.renderer == nil {
		return domain.OutputFormatPDF
	}
	return s.renderer.Format()
}

// Suggestion returns the pre-fill hint for a field.
func (s *OrderSession) Suggestion(name string) (string, bool) {
	return Suggestion(name, s.now())
}

// OutputFilename returns the suggested file name for the rendered form.
func (s *OrderSession) OutputFilename() string {
	customer := ""
	if v, ok := s.form.Value(domain.FieldCustomerName); ok {
		customer = v.Text()
	}
	return OutputFilename(s.company, customer, s.now(), s.Format())
}

// Ensure SessionFactory implements the interface.
var _ driving.SessionFactory = (*SessionFactory)(nil)

// SessionFactory creates sessions that share a schema, an extraction
// service and a set of renderers.
type SessionFactory struct {
	schema     *domain.FieldSchema
	extraction driving.ExtractionService
	renderers  map[domain.OutputFormat]driven.DocumentRenderer
	settings   driving.SettingsService
}

// NewSessionFactory creates a session factory. settings may be nil, in
// which case the default company name is used.
func NewSessionFactory(
	schema *domain.FieldSchema,
	extraction driving.ExtractionService,
	settings driving.SettingsService,
	renderers ...driven.DocumentRenderer,
) *SessionFactory {
	byFormat := make(map[domain.OutputFormat]driven.DocumentRenderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &SessionFactory{
		schema:     schema,
		extraction: extraction,
		renderers:  byFormat,
		settings:   settings,
	}
}

// NewSession returns an empty session rendering in format.
func (f *SessionFactory) NewSession(format domain.OutputFormat) (driving.OrderSession, error) {
	renderer, ok := f.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: output format %q", domain.ErrUnsupportedType, format)
	}
	company := domain.DefaultCompanyName
	if f.settings != nil {
		if settings, err := f.settings.Get(); err == nil && settings.Branding.CompanyName != "" {
			company = settings.Branding.CompanyName
		}
	}
	return NewOrderSession(f.schema, f.extraction, renderer, company), nil
}
