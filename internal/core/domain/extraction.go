package domain

import "strconv"

// Confidence grades how an extracted value was recognised.
type Confidence string

const (
	// ConfidenceHigh means the field's own display label matched.
	ConfidenceHigh Confidence = "high"

	// ConfidenceMedium means one of the field's aliases matched.
	ConfidenceMedium Confidence = "medium"
)

// Extraction is one field recovered from document text.
type Extraction struct {
	// Field is the schema field name.
	Field string

	// Value is the coerced, well-typed value.
	Value Value

	// Raw is the captured text before coercion.
	Raw string

	// Label is the label text as it appeared in the document.
	Label string

	// Line is the 1-based line of the label.
	Line int

	// Offset is the byte offset of the label in the text.
	Offset int

	// Confidence grades the label match.
	Confidence Confidence
}

// Provenance describes where the value came from, e.g.
// `line 3 "Billing Email"`.
func (e Extraction) Provenance() string {
	return "line " + strconv.Itoa(e.Line) + " " + strconv.Quote(e.Label)
}

// SkippedField records a labelled value that failed coercion.
type SkippedField struct {
	Field  string
	Raw    string
	Line   int
	Reason string
}

// ExtractionResult is the partial mapping produced from one document.
// Entries appear in schema order; fields not found are absent.
type ExtractionResult struct {
	Entries []Extraction
	Skipped []SkippedField
}

// Len returns the number of extracted fields.
func (r ExtractionResult) Len() int { return len(r.Entries) }

// Get returns the extraction for field, if present.
func (r ExtractionResult) Get(field string) (Extraction, bool) {
	for _, e := range r.Entries {
		if e.Field == field {
			return e, true
		}
	}
	return Extraction{}, false
}

// Values returns the extracted values keyed by field name.
func (r ExtractionResult) Values() map[string]Value {
	out := make(map[string]Value, len(r.Entries))
	for _, e := range r.Entries {
		out[e.Field] = e.Value
	}
	return out
}
