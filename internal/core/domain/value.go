package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical serialised form of a date value.
const DateLayout = "2006-01-02"

// DisplayDateLayout is how dates appear on the rendered form.
const DisplayDateLayout = "01/02/2006"

// dateLayouts are tried in order when parsing user or document input.
var dateLayouts = []string{
	DateLayout,
	"1/2/2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Value is a typed field value. The zero Value has no type and is never
// stored in a form.
type Value struct {
	typ    FieldType
	text   string
	date   time.Time
	months int
	amount decimal.Decimal
}

// TextValue returns a free-form text value.
func TextValue(s string) Value { return Value{typ: FieldText, text: s} }

// EmailValue returns an email value.
func EmailValue(s string) Value { return Value{typ: FieldEmail, text: s} }

// EnumValue returns an enum value.
func EnumValue(s string) Value { return Value{typ: FieldEnum, text: s} }

// DateValue returns a date value. The time of day is dropped.
func DateValue(t time.Time) Value {
	y, m, d := t.Date()
	return Value{typ: FieldDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// MonthsValue returns a months value.
func MonthsValue(n int) Value { return Value{typ: FieldMonths, months: n} }

// CurrencyValue returns a currency value.
func CurrencyValue(d decimal.Decimal) Value { return Value{typ: FieldCurrency, amount: d} }

// Type returns the value's field type.
func (v Value) Type() FieldType { return v.typ }

// IsZero reports whether v is the untyped zero Value.
func (v Value) IsZero() bool { return v.typ == "" }

// Text returns the string content of text, email and enum values.
func (v Value) Text() string { return v.text }

// Date returns the date of a date value.
func (v Value) Date() time.Time { return v.date }

// Months returns the month count of a months value.
func (v Value) Months() int { return v.months }

// Amount returns the amount of a currency value.
func (v Value) Amount() decimal.Decimal { return v.amount }

// IsBlank reports whether a string-backed value is empty after trimming.
func (v Value) IsBlank() bool {
	switch v.typ {
	case FieldText, FieldEmail, FieldEnum:
		return strings.TrimSpace(v.text) == ""
	default:
		return false
	}
}

// Equal reports whether two values have the same type and content.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case FieldDate:
		return v.date.Equal(o.date)
	case FieldMonths:
		return v.months == o.months
	case FieldCurrency:
		return v.amount.Equal(o.amount)
	default:
		return v.text == o.text
	}
}

// String returns the canonical serialised form.
func (v Value) String() string {
	switch v.typ {
	case FieldDate:
		return v.date.Format(DateLayout)
	case FieldMonths:
		return strconv.Itoa(v.months)
	case FieldCurrency:
		return v.amount.StringFixed(2)
	default:
		return v.text
	}
}

// Display returns the form shown to people: US-style dates and
// dollar-formatted amounts.
func (v Value) Display() string {
	switch v.typ {
	case FieldDate:
		return v.date.Format(DisplayDateLayout)
	case FieldCurrency:
		return FormatMoney(v.amount)
	default:
		return v.String()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// FormatMoney renders an amount as "$1,234.50".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + b.String() + "." + frac
}

// ParseDate parses a date in any of the accepted layouts.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidInput, raw)
}

// ParseMoney parses an amount, ignoring "$", "," and surrounding space.
func ParseMoney(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "USD"), "usd")
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not an amount", ErrInvalidInput, raw)
	}
	return d, nil
}

// ParseValue coerces raw text into a value of the field's type.
func ParseValue(def FieldDefinition, raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	switch def.Type {
	case FieldText:
		return TextValue(s), nil
	case FieldEmail:
		if !looksLikeEmail(s) {
			return Value{}, fmt.Errorf("%w: %q is not an email address", ErrInvalidInput, raw)
		}
		return EmailValue(s), nil
	case FieldDate:
		t, err := ParseDate(s)
		if err != nil {
			return Value{}, err
		}
		return DateValue(t), nil
	case FieldMonths:
		n, err := parseMonths(s)
		if err != nil {
			return Value{}, err
		}
		return MonthsValue(n), nil
	case FieldCurrency:
		d, err := ParseMoney(s)
		if err != nil {
			return Value{}, err
		}
		if d.IsNegative() {
			return Value{}, fmt.Errorf("%w: negative amount %q", ErrInvalidInput, raw)
		}
		return CurrencyValue(d), nil
	case FieldEnum:
		opt, ok := def.HasOption(s)
		if !ok {
			return Value{}, fmt.Errorf("%w: %q is not one of %s", ErrInvalidInput, raw, strings.Join(def.Options, ", "))
		}
		return EnumValue(opt), nil
	default:
		return Value{}, fmt.Errorf("%w: field type %q", ErrUnsupportedType, def.Type)
	}
}

// Check verifies that v can be stored in the field.
func (d FieldDefinition) Check(v Value) error {
	if v.typ != d.Type {
		return &TypeMismatchError{Field: d.Name, Expected: d.Type, Got: v.typ}
	}
	switch v.typ {
	case FieldEnum:
		if _, ok := d.HasOption(v.text); !ok {
			return &TypeMismatchError{
				Field: d.Name, Expected: d.Type, Got: v.typ,
				Reason: fmt.Sprintf("%q is not one of %s", v.text, strings.Join(d.Options, ", ")),
			}
		}
	case FieldMonths:
		if v.months < 1 || v.months > MaxTermMonths {
			return &TypeMismatchError{
				Field: d.Name, Expected: d.Type, Got: v.typ,
				Reason: fmt.Sprintf("term must be between 1 and %d months", MaxTermMonths),
			}
		}
	case FieldEmail:
		if !v.IsBlank() && !looksLikeEmail(v.text) {
			return &TypeMismatchError{Field: d.Name, Expected: d.Type, Got: v.typ, Reason: fmt.Sprintf("%q is not an email address", v.text)}
		}
	}
	return nil
}

func parseMonths(s string) (int, error) {
	lower := strings.ToLower(s)
	for _, suffix := range []string{"months", "month", "mos", "mo"} {
		if strings.HasSuffix(lower, suffix) {
			lower = strings.TrimSpace(strings.TrimSuffix(lower, suffix))
			break
		}
	}
	n, err := strconv.Atoi(lower)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number of months", ErrInvalidInput, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: term must be at least one month", ErrInvalidInput)
	}
	if n > MaxTermMonths {
		return 0, fmt.Errorf("%w: term must be at most %d months", ErrInvalidInput, MaxTermMonths)
	}
	return n, nil
}

func looksLikeEmail(s string) bool {
	if strings.ContainsAny(s, " \t") || strings.Count(s, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	if local == "" {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if equalFold(s, v) {
			return true
		}
	}
	return false
}
