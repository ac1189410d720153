// Package text renders order forms as plain text for previews and
// terminals.
package text

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/render"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.DocumentRenderer = (*Renderer)(nil)

// width is the wrap width for paragraphs.
const width = 78

// Renderer writes order forms as plain text.
type Renderer struct{}

// New creates a plain text renderer.
func New() *Renderer {
	return &Renderer{}
}

// Format returns domain.OutputFormatText.
func (r *Renderer) Format() domain.OutputFormat {
	return domain.OutputFormatText
}

// Render writes form to w.
func (r *Renderer) Render(ctx context.Context, form domain.OrderForm, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := render.Build(form)
	p := &printer{w: w}

	p.line(strings.ToUpper(l.Company))
	p.line(l.Title)
	for _, n := range l.Notices {
		p.line(n)
	}

	p.section("Customer Information")
	p.pairs(l.Customer)
	p.line("")
	p.line("Ship To Address:")
	p.lines(l.ShipTo)
	p.line("Bill to Address:")
	p.lines(l.BillTo)

	p.section("Terms")
	p.pairs(l.Terms)

	p.section("Services")
	p.table(l.Services)

	if len(l.UsageTerms) > 0 {
		p.section("Usage Terms")
		for _, para := range l.UsageTerms {
			p.lines(render.Wrap(para, width))
		}
	}

	p.section("Agreement")
	p.lines(render.Wrap(l.Agreement, width))

	p.line("")
	for _, s := range l.Signatories {
		p.line(s)
		for _, f := range []string{"By:", "Name:", "Title:", "Date:"} {
			p.line("  " + f + " ____________________")
		}
	}

	if p.err != nil {
		return fmt.Errorf("render text: %w", p.err)
	}
	return nil
}

// printer remembers the first write error so rendering code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) lines(ss []string) {
	for _, s := range ss {
		p.line(s)
	}
}

func (p *printer) section(title string) {
	p.line("")
	p.line(title)
	p.line(strings.Repeat("-", len(title)))
}

func (p *printer) pairs(pairs []render.Pair) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 1, ' ', 0)
	for _, pair := range pairs {
		fmt.Fprintf(tw, "%s\t%s\n", pair.Label, pair.Value)
	}
	p.err = tw.Flush()
}

func (p *printer) table(t render.Table) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	row := func(cells []string) {
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	row(t.Headers)
	for _, r := range t.Rows {
		row(r)
	}
	total := make([]string, len(t.Headers))
	if n := len(total); n >= 2 {
		total[n-2] = "Total:"
		total[n-1] = t.Total
	}
	row(total)
	p.err = tw.Flush()
}
