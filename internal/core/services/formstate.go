package services

import (
	"strings"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// Origin records who last set a field.
type Origin int

const (
	// OriginNone means the field is unset.
	OriginNone Origin = iota

	// OriginExtracted means the value came from an uploaded document.
	OriginExtracted

	// OriginUser means the value was entered or edited by the user.
	OriginUser
)

// String returns the string representation.
func (o Origin) String() string {
	switch o {
	case OriginExtracted:
		return "extracted"
	case OriginUser:
		return "user"
	default:
		return "unset"
	}
}

// FormState holds the field values and services table of one form.
// Derived values are recomputed after every mutation. Not safe for
// concurrent use.
type FormState struct {
	schema    *domain.FieldSchema
	values    map[string]domain.Value
	origins   map[string]Origin
	lineItems []domain.ServiceLineItem
	computed  domain.Computed
}

// NewFormState returns an empty form for schema.
func NewFormState(schema *domain.FieldSchema) *FormState {
	f := &FormState{
		schema:  schema,
		values:  make(map[string]domain.Value),
		origins: make(map[string]Origin),
	}
	f.recompute()
	return f
}

// Schema returns the schema the form validates against.
func (f *FormState) Schema() *domain.FieldSchema { return f.schema }

// Merge copies extracted values into fields that are still unset and
// returns the names it filled, in schema order. Fields already set, by the
// user or an earlier merge, are never overwritten, so merging the same
// result twice changes nothing.
func (f *FormState) Merge(result domain.ExtractionResult) []string {
	var merged []string
	for _, e := range result.Entries {
		def, err := f.schema.Get(e.Field)
		if err != nil {
			continue
		}
		if _, set := f.values[e.Field]; set {
			continue
		}
		if def.Check(e.Value) != nil {
			continue
		}
		f.values[e.Field] = e.Value
		f.origins[e.Field] = OriginExtracted
		merged = append(merged, e.Field)
	}
	if len(merged) > 0 {
		f.recompute()
	}
	return merged
}

// SetField stores value in name, replacing any prior value.
func (f *FormState) SetField(name string, value domain.Value) error {
	def, err := f.schema.Get(name)
	if err != nil {
		return err
	}
	if err := def.Check(value); err != nil {
		return err
	}
	f.values[name] = value
	f.origins[name] = OriginUser
	f.recompute()
	return nil
}

// SetFieldText parses raw with the field's type and stores it. Blank input
// clears the field.
func (f *FormState) SetFieldText(name, raw string) error {
	def, err := f.schema.Get(name)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return f.ClearField(name)
	}
	v, err := domain.ParseValue(def, raw)
	if err != nil {
		return &domain.TypeMismatchError{Field: name, Expected: def.Type, Got: def.Type, Reason: err.Error()}
	}
	return f.SetField(name, v)
}

// ClearField unsets name so that merges and defaults apply again.
func (f *FormState) ClearField(name string) error {
	if !f.schema.Has(name) {
		return &domain.UnknownFieldError{Name: name}
	}
	delete(f.values, name)
	delete(f.origins, name)
	f.recompute()
	return nil
}

// Value returns the value set for name.
func (f *FormState) Value(name string) (domain.Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

// IsSet reports whether name holds a value.
func (f *FormState) IsSet(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Origin reports who set name.
func (f *FormState) Origin(name string) Origin {
	return f.origins[name]
}

// Effective returns the set value of name or, failing that, its default.
func (f *FormState) Effective(name string) (domain.Value, bool) {
	if v, ok := f.values[name]; ok {
		return v, true
	}
	def, err := f.schema.Get(name)
	if err != nil || def.Default == nil {
		return domain.Value{}, false
	}
	return *def.Default, true
}

// Values returns a copy of the set values.
func (f *FormState) Values() map[string]domain.Value {
	out := make(map[string]domain.Value, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// EffectiveValues returns set values merged over schema defaults.
func (f *FormState) EffectiveValues() map[string]domain.Value {
	out := make(map[string]domain.Value, f.schema.Len())
	for _, name := range f.schema.Names() {
		if v, ok := f.Effective(name); ok {
			out[name] = v
		}
	}
	return out
}

// LineItems returns a copy of the services table.
func (f *FormState) LineItems() []domain.ServiceLineItem {
	return append([]domain.ServiceLineItem(nil), f.lineItems...)
}

// AddLineItem appends a row.
func (f *FormState) AddLineItem(item domain.ServiceLineItem) {
	f.lineItems = append(f.lineItems, item)
	f.recompute()
}

// UpdateLineItem replaces the row at index.
func (f *FormState) UpdateLineItem(index int, item domain.ServiceLineItem) error {
	if err := f.checkIndex(index); err != nil {
		return err
	}
	f.lineItems[index] = item
	f.recompute()
	return nil
}

// RemoveLineItem deletes the row at index.
func (f *FormState) RemoveLineItem(index int) error {
	if err := f.checkIndex(index); err != nil {
		return err
	}
	f.lineItems = append(f.lineItems[:index], f.lineItems[index+1:]...)
	f.recompute()
	return nil
}

// ReplaceLineItems swaps in a whole table.
func (f *FormState) ReplaceLineItems(items []domain.ServiceLineItem) {
	f.lineItems = append([]domain.ServiceLineItem(nil), items...)
	f.recompute()
}

// Computed returns the derived values as of the last mutation.
func (f *FormState) Computed() domain.Computed {
	c := f.computed
	c.LineTotals = append(c.LineTotals[:0:0], f.computed.LineTotals...)
	if f.computed.EndDate != nil {
		end := *f.computed.EndDate
		c.EndDate = &end
	}
	return c
}

func (f *FormState) checkIndex(index int) error {
	if index < 0 || index >= len(f.lineItems) {
		return &domain.IndexOutOfRangeError{Index: index, Len: len(f.lineItems)}
	}
	return nil
}

func (f *FormState) recompute() {
	f.computed = Recompute(f.Effective, f.lineItems)
}
