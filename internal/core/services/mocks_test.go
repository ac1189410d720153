package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

// recordingRenderer captures the last form it was asked to render.
type recordingRenderer struct {
	format domain.OutputFormat
	forms  []domain.OrderForm
	err    error
}

func (r *recordingRenderer) Format() domain.OutputFormat {
	if r.format == "" {
		return domain.OutputFormatText
	}
	return r.format
}

func (r *recordingRenderer) Render(_ context.Context, form domain.OrderForm, w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	r.forms = append(r.forms, form)
	_, err := fmt.Fprintf(w, "order for %s", form.Display(domain.FieldCustomerName))
	return err
}

// textRegistry "normalises" any supported upload by returning its bytes.
type textRegistry struct {
	err error
}

func (r *textRegistry) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &driven.NormaliseResult{Document: domain.Document{URI: raw.URI, Content: string(raw.Content)}}, nil
}

func (r *textRegistry) Register(driven.Normaliser) {}

func (r *textRegistry) SupportedMIMETypes() []string { return []string{MIMETypePlainText} }

// prefixPipeline proves the pipeline runs between normalisation and extraction.
type prefixPipeline struct {
	prefix string
	err    error
}

func (p *prefixPipeline) Process(_ context.Context, doc *domain.Document) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.prefix + doc.Content, nil
}

var errBoom = errors.New("boom")
