package domain

// FieldType identifies how a field value is parsed, stored and rendered.
type FieldType string

// Available field types.
const (
	// FieldText is free-form text.
	FieldText FieldType = "text"

	// FieldEmail is an email address.
	FieldEmail FieldType = "email"

	// FieldDate is a calendar date without time of day.
	FieldDate FieldType = "date"

	// FieldMonths is a positive whole number of months.
	FieldMonths FieldType = "months"

	// FieldCurrency is a monetary amount.
	FieldCurrency FieldType = "currency"

	// FieldEnum is one of a fixed set of options.
	FieldEnum FieldType = "enum"
)

// IsValid returns true if the field type is recognised.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldText, FieldEmail, FieldDate, FieldMonths, FieldCurrency, FieldEnum:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FieldType) String() string {
	return string(t)
}

// Condition makes a field required depending on another field's effective value.
// Exactly one of In or NotIn is used.
type Condition struct {
	// Field is the name of the field the condition looks at.
	Field string

	// In lists values that make the dependent field required.
	In []string

	// NotIn lists values that make the dependent field optional.
	// An unset controlling field counts as not in the list.
	NotIn []string
}

// Holds reports whether the condition is met for the given controlling value.
// set is false when the controlling field has no effective value.
func (c Condition) Holds(value string, set bool) bool {
	if len(c.In) > 0 {
		if !set {
			return false
		}
		return containsFold(c.In, value)
	}
	if !set {
		return true
	}
	return !containsFold(c.NotIn, value)
}

// FieldDefinition declares one order-form field.
type FieldDefinition struct {
	// Name is the stable key, e.g. "customer_name".
	Name string

	// Label is the display label, e.g. "Customer Name".
	Label string

	// Aliases are alternative labels recognised when reading documents.
	Aliases []string

	// Type determines parsing and validation.
	Type FieldType

	// Step is the wizard step that collects the field.
	Step WizardStep

	// Required fields must be set before leaving their step.
	Required bool

	// RequiredWhen makes an otherwise optional field required.
	RequiredWhen *Condition

	// Options lists the allowed values for enum fields.
	Options []string

	// Default is the effective value when the field is unset.
	Default *Value

	// Help is a short hint shown by interactive front ends.
	Help string
}

// HasOption reports whether v is one of the enum options (case-insensitive)
// and returns the canonical spelling.
func (d FieldDefinition) HasOption(v string) (string, bool) {
	for _, o := range d.Options {
		if equalFold(o, v) {
			return o, true
		}
	}
	return "", false
}

// Labels returns the display label followed by its aliases.
func (d FieldDefinition) Labels() []string {
	return append([]string{d.Label}, d.Aliases...)
}

// IsRequired resolves the field's requirement against the effective value
// of the controlling field, if any.
func (d FieldDefinition) IsRequired(lookup func(name string) (Value, bool)) bool {
	if d.Required {
		return true
	}
	if d.RequiredWhen == nil {
		return false
	}
	v, ok := lookup(d.RequiredWhen.Field)
	return d.RequiredWhen.Holds(v.String(), ok && !v.IsBlank())
}

func (d FieldDefinition) clone() FieldDefinition {
	c := d
	if d.Options != nil {
		c.Options = append([]string(nil), d.Options...)
	}
	if d.Aliases != nil {
		c.Aliases = append([]string(nil), d.Aliases...)
	}
	if d.RequiredWhen != nil {
		cond := *d.RequiredWhen
		cond.In = append([]string(nil), d.RequiredWhen.In...)
		cond.NotIn = append([]string(nil), d.RequiredWhen.NotIn...)
		c.RequiredWhen = &cond
	}
	if d.Default != nil {
		v := *d.Default
		c.Default = &v
	}
	return c
}
