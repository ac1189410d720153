// Package pdf renders order forms to PDF with pdfcpu. The form layout is
// translated into a pdfcpu JSON page description and handed to
// api.Create.
package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/render"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.DocumentRenderer = (*Renderer)(nil)

// Letter page geometry in points.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	margin       = 36.0
	topMargin    = 56.0
	bottomMargin = 40.0
	rightColumn  = 312.0
	lineHeight   = 12.0
	wrapColumns  = 100
)

// Font names from the PDF standard 14 set.
const (
	fontRegular = "Helvetica"
	fontBold    = "Helvetica-Bold"
	fontItalic  = "Helvetica-Oblique"
)

// CreateFunc writes a PDF built from a pdfcpu JSON description to w.
type CreateFunc func(description io.Reader, w io.Writer) error

// Renderer draws order forms as Letter-sized PDFs.
type Renderer struct {
	create CreateFunc
}

// New creates a renderer backed by pdfcpu.
func New() *Renderer {
	return &Renderer{create: createWithPDFCPU}
}

// NewWithCreate creates a renderer with a custom PDF writer.
func NewWithCreate(create CreateFunc) *Renderer {
	return &Renderer{create: create}
}

// Format returns domain.OutputFormatPDF.
func (r *Renderer) Format() domain.OutputFormat {
	return domain.OutputFormatPDF
}

// Render writes form to w as a PDF.
func (r *Renderer) Render(ctx context.Context, form domain.OrderForm, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	desc, err := json.Marshal(Describe(render.Build(form)))
	if err != nil {
		return fmt.Errorf("encode pdf layout: %w", err)
	}
	if err := r.create(bytes.NewReader(desc), w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func createWithPDFCPU(description io.Reader, w io.Writer) error {
	return api.Create(nil, description, w, model.NewDefaultConfiguration())
}

// Description is the subset of the pdfcpu JSON page description used for
// order forms.
type Description struct {
	Paper string          `json:"paper"`
	Pages map[string]Page `json:"pages"`
}

// Page holds the content of one page.
type Page struct {
	Content Content `json:"content"`
}

// Content lists the text boxes on a page.
type Content struct {
	Text []TextBox `json:"text"`
}

// TextBox is a single line of text anchored at its baseline.
type TextBox struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Align string     `json:"align,omitempty"`
	Font  Font       `json:"font"`
}

// Font selects a typeface and size.
type Font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// canvas tracks the write position and starts new pages as needed.
type canvas struct {
	pages []Page
	y     float64
}

func newCanvas() *canvas {
	return &canvas{pages: []Page{{}}, y: pageHeight - topMargin}
}

// ensure starts a new page when fewer than h points remain.
func (c *canvas) ensure(h float64) {
	if c.y-h < bottomMargin {
		c.pages = append(c.pages, Page{})
		c.y = pageHeight - topMargin
	}
}

func (c *canvas) text(x float64, value string, font string, size int) {
	if value == "" {
		return
	}
	p := &c.pages[len(c.pages)-1]
	p.Content.Text = append(p.Content.Text, TextBox{
		Value: value,
		Pos:   [2]float64{x, c.y},
		Font:  Font{Name: font, Size: size},
	})
}

func (c *canvas) centred(value string, font string, size int) {
	if value == "" {
		return
	}
	p := &c.pages[len(c.pages)-1]
	p.Content.Text = append(p.Content.Text, TextBox{
		Value: value,
		Pos:   [2]float64{pageWidth / 2, c.y},
		Align: "center",
		Font:  Font{Name: font, Size: size},
	})
}

func (c *canvas) down(h float64) { c.y -= h }

func (c *canvas) heading(title string) {
	c.ensure(36)
	c.down(24)
	c.text(margin, title, fontBold, 12)
	c.down(20)
}

func (c *canvas) paragraph(text string) {
	for _, line := range render.Wrap(text, wrapColumns) {
		c.ensure(lineHeight)
		c.text(margin, line, fontRegular, 10)
		c.down(lineHeight)
	}
}

// pair prints "Label: value" with the value offset by the label width.
func (c *canvas) pair(x float64, p render.Pair) {
	c.text(x, p.Label, fontBold, 10)
	c.text(x+labelWidth(p.Label), p.Value, fontRegular, 10)
}

// labelWidth approximates the width of bold 10pt Helvetica text.
func labelWidth(s string) float64 {
	return float64(len(s))*5.6 + 4
}

// Describe converts a layout to a pdfcpu page description.
func Describe(l render.Layout) Description {
	c := newCanvas()

	c.down(26)
	c.centred(l.Company, fontBold, 26)
	c.down(30)
	c.centred(l.Title, fontBold, 12)
	for _, n := range l.Notices {
		c.down(16)
		c.centred(n, fontItalic, 10)
	}
	c.down(8)

	c.heading("Customer Information")
	for i := 0; i < len(l.Customer); i += 2 {
		c.ensure(16)
		c.pair(margin, l.Customer[i])
		if i+1 < len(l.Customer) {
			c.pair(rightColumn, l.Customer[i+1])
		}
		c.down(16)
	}
	c.down(8)
	c.ensure(lineHeight * 2)
	c.text(margin, "Ship To Address:", fontBold, 10)
	c.text(rightColumn, "Bill to Address:", fontBold, 10)
	c.down(14)
	for i := 0; i < max(len(l.ShipTo), len(l.BillTo)); i++ {
		c.ensure(lineHeight)
		if i < len(l.ShipTo) {
			c.text(margin, l.ShipTo[i], fontRegular, 10)
		}
		if i < len(l.BillTo) {
			c.text(rightColumn, l.BillTo[i], fontRegular, 10)
		}
		c.down(lineHeight)
	}

	c.heading("Terms")
	for i := 0; i < len(l.Terms); i += 2 {
		c.ensure(16)
		c.pair(margin, l.Terms[i])
		if i+1 < len(l.Terms) {
			c.pair(rightColumn, l.Terms[i+1])
		}
		c.down(16)
	}

	c.heading("Services")
	drawTable(c, l.Services)

	if len(l.UsageTerms) > 0 {
		c.heading("Usage Terms")
		for _, p := range l.UsageTerms {
			c.paragraph(p)
		}
	}

	c.heading("Agreement")
	c.paragraph(l.Agreement)

	c.ensure(132)
	c.down(30)
	for i, s := range l.Signatories {
		c.text(margin+float64(i)*(rightColumn-margin), s, fontBold, 12)
	}
	for _, field := range []string{"By:", "Name:", "Title:", "Date:"} {
		c.down(24)
		for i := range l.Signatories {
			c.text(margin+float64(i)*(rightColumn-margin), field+" ______________________________", fontRegular, 10)
		}
	}

	pages := make(map[string]Page, len(c.pages))
	for i, p := range c.pages {
		pages[strconv.Itoa(i+1)] = p
	}
	return Description{Paper: "Letter", Pages: pages}
}

// drawTable prints the services table as aligned columns. Column widths
// are fractions of the printable width.
func drawTable(c *canvas, t render.Table) {
	widths := []float64{0.25, 0.23, 0.21, 0.12, 0.19}
	if len(t.Headers) == 4 {
		widths = []float64{0.27, 0.33, 0.20, 0.20}
	}
	tableWidth := pageWidth - 2*margin
	xs := make([]float64, len(widths))
	x := margin
	for i, w := range widths {
		xs[i] = x
		x += w * tableWidth
	}

	c.ensure(lineHeight * 2)
	for i, h := range t.Headers {
		if i < len(xs) {
			c.text(xs[i], h, fontBold, 9)
		}
	}
	c.down(16)
	for _, row := range t.Rows {
		c.ensure(16)
		for i, cell := range row {
			if i < len(xs) {
				c.text(xs[i], cell, fontRegular, 9)
			}
		}
		c.down(16)
	}
	c.ensure(16)
	last := len(xs) - 1
	if last > 0 {
		c.text(xs[last-1], "Total:", fontBold, 10)
		c.text(xs[last], t.Total, fontBold, 10)
	}
	c.down(16)
}
