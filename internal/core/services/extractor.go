package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/logger"
)

var extractLog = logger.Component("extract")

// labelPattern matches one label of one field.
type labelPattern struct {
	field     domain.FieldDefinition
	label     string
	canonical bool
	re        *regexp.Regexp
}

// occurrence is a label found in the text.
type occurrence struct {
	pattern *labelPattern
	start   int // first byte of the label
	end     int // first byte after the separator
	text    string
	line    int
}

func (o occurrence) width() int { return o.end - o.start }

// FieldExtractor maps loosely structured text onto a schema using
// "Label: value" anchors. It is stateless after construction.
type FieldExtractor struct {
	schema   *domain.FieldSchema
	patterns []*labelPattern
}

// NewFieldExtractor compiles the label table of schema.
func NewFieldExtractor(schema *domain.FieldSchema) *FieldExtractor {
	e := &FieldExtractor{schema: schema}
	for _, def := range schema.Fields() {
		for i, label := range def.Labels() {
			e.patterns = append(e.patterns, &labelPattern{
				field:     def,
				label:     label,
				canonical: i == 0,
				re:        compileLabel(label),
			})
		}
	}
	return e
}

// compileLabel builds a case-insensitive matcher for label followed by a
// ":" or a free-standing "-" separator, so that "PO-991" is not read as the
// label "PO". Group 1 spans the label as written.
func compileLabel(label string) *regexp.Regexp {
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?im)(?:^|[^\p{L}\p{N}])(` + strings.Join(words, `[ \t]+`) + `)(?:[ \t]*:|[ \t]*-(?:[ \t]|$))`)
}

// Schema returns the schema the extractor was built for.
func (e *FieldExtractor) Schema() *domain.FieldSchema {
	return e.schema
}

// Extract returns the fields recognised in text. It never fails and never
// reports a field without a matching label in the text.
func (e *FieldExtractor) Extract(text string) domain.ExtractionResult {
	var result domain.ExtractionResult
	if strings.TrimSpace(text) == "" {
		return result
	}

	occs := e.resolveOverlaps(e.findAll(text))

	// Best occurrence per field among those followed by a value: longest
	// label, then earliest position.
	best := make(map[string]int)
	values := make([]string, len(occs))
	for i, o := range occs {
		values[i] = captureValue(text, occs, i)
		if values[i] == "" {
			extractLog.Debug("%s: label %q on line %d has no value", o.pattern.field.Name, o.text, o.line)
			continue
		}
		name := o.pattern.field.Name
		j, seen := best[name]
		if !seen || len(o.pattern.label) > len(occs[j].pattern.label) {
			best[name] = i
		}
	}

	for _, def := range e.schema.Fields() {
		i, ok := best[def.Name]
		if !ok {
			continue
		}
		o := occs[i]
		raw := values[i]
		if def.Type != domain.FieldText {
			raw = strings.TrimRight(raw, ".")
		}
		v, err := domain.ParseValue(def, raw)
		if err != nil {
			extractLog.Warn("%s: skipping %q on line %d: %v", def.Name, raw, o.line, err)
			result.Skipped = append(result.Skipped, domain.SkippedField{
				Field:  def.Name,
				Raw:    raw,
				Line:   o.line,
				Reason: err.Error(),
			})
			continue
		}
		confidence := domain.ConfidenceMedium
		if o.pattern.canonical {
			confidence = domain.ConfidenceHigh
		}
		extractLog.Debug("%s = %q (line %d, label %q)", def.Name, v.String(), o.line, o.text)
		result.Entries = append(result.Entries, domain.Extraction{
			Field:      def.Name,
			Value:      v,
			Raw:        raw,
			Label:      o.text,
			Line:       o.line,
			Offset:     o.start,
			Confidence: confidence,
		})
	}
	return result
}

func (e *FieldExtractor) findAll(text string) []occurrence {
	lineStarts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	lineOf := func(offset int) int {
		return sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > offset })
	}

	var occs []occurrence
	for _, p := range e.patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			occs = append(occs, occurrence{
				pattern: p,
				start:   m[2],
				end:     m[1],
				text:    text[m[2]:m[3]],
				line:    lineOf(m[2]),
			})
		}
	}
	return occs
}

// resolveOverlaps keeps the widest of any overlapping occurrences, so that
// "Email" inside "Billing Email:" is not treated as a label of its own.
// The survivors are returned in text order.
func (e *FieldExtractor) resolveOverlaps(occs []occurrence) []occurrence {
	sort.SliceStable(occs, func(i, j int) bool {
		if occs[i].width() != occs[j].width() {
			return occs[i].width() > occs[j].width()
		}
		return occs[i].start < occs[j].start
	})

	kept := make([]occurrence, 0, len(occs))
	for _, o := range occs {
		clash := false
		for _, k := range kept {
			if o.start < k.end && k.start < o.end {
				clash = true
				break
			}
		}
		if !clash {
			kept = append(kept, o)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].start < kept[j].start })
	return kept
}

// captureValue returns the text after occs[i] up to the end of the line or
// the next label, whichever is first.
func captureValue(text string, occs []occurrence, i int) string {
	from := occs[i].end
	to := len(text)
	if nl := strings.IndexAny(text[from:], "\r\n"); nl >= 0 {
		to = from + nl
	}
	if i+1 < len(occs) && occs[i+1].start < to {
		to = occs[i+1].start
	}
	return trimValue(text[from:to])
}

const (
	leadingCutset  = " \t:;,|*-\"'–—"
	trailingCutset = " \t:;,|*\"'"
)

func trimValue(s string) string {
	s = strings.TrimLeft(s, leadingCutset)
	return strings.TrimRight(s, trailingCutset)
}
