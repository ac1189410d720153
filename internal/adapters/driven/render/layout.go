// Package render turns a generated OrderForm into a format-neutral page
// layout. The pdf and text subpackages draw that layout.
package render

import (
	"strings"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// noticeDateLayout is the date style used in header notices.
const noticeDateLayout = "01.02.2006"

// Pair is a label printed in bold followed by its value.
type Pair struct {
	Label string
	Value string
}

// Table is the services table. The last column holds amounts.
type Table struct {
	Headers []string
	Rows    [][]string
	Total   string
}

// Layout is the content of an order form in reading order.
type Layout struct {
	Company     string
	Title       string
	Notices     []string
	Customer    []Pair
	ShipTo      []string
	BillTo      []string
	Terms       []Pair
	Services    Table
	UsageTerms  []string
	Agreement   string
	Signatories []string
}

// Build lays out form. Unset optional fields render as empty values.
func Build(form domain.OrderForm) Layout {
	company := form.CompanyName
	if company == "" {
		company = domain.DefaultCompanyName
	}

	return Layout{
		Company: company,
		Title:   "Order Form",
		Notices: notices(form),
		Customer: []Pair{
			{"Customer:", form.Display(domain.FieldCustomerName)},
			{"Customer Contact:", form.Display(domain.FieldPrimaryContactName)},
			{"Email:", form.Display(domain.FieldPrimaryContactEmail)},
			{"Billing Email:", form.Display(domain.FieldBillingEmail)},
		},
		ShipTo:      splitLines(form.Display(domain.FieldShippingAddress)),
		BillTo:      splitLines(form.Display(domain.FieldBillingAddress)),
		Terms:       terms(form),
		Services:    servicesTable(form),
		UsageTerms:  usageTerms(form),
		Agreement:   agreement(form, company),
		Signatories: []string{company + ":", "Customer:"},
	}
}

func notices(form domain.OrderForm) []string {
	var out []string
	if v, ok := form.Values[domain.FieldExpirationDate]; ok && v.Type() == domain.FieldDate {
		out = append(out, "Order Form expires on "+v.Date().Format(noticeDateLayout)+" without signature")
	}
	if form.Display(domain.FieldOpportunityType) == domain.OpportunityExpansion {
		if eff := form.Display(domain.FieldAddendumEffectiveDate); eff != "" {
			out = append(out, "This order form is an addendum to the order form with an effective date of "+eff+".")
		}
	}
	return out
}

func terms(form domain.OrderForm) []Pair {
	end := ""
	if form.Computed.EndDate != nil {
		end = form.Computed.EndDate.Format(domain.DisplayDateLayout)
	}
	out := []Pair{
		{"Paid Subscription Term Start Date:", form.Display(domain.FieldStartDate)},
		{"Paid Subscription Term End Date:", end},
		{"Subscription Term (months):", form.Display(domain.FieldSubscriptionTerm)},
		{"Billing Frequency:", form.Display(domain.FieldBillingFrequency)},
		{"Payment Terms:", form.Display(domain.FieldPaymentTerms)},
		{"Payment Method:", form.Display(domain.FieldPaymentMethod)},
		{"PO (if applicable):", form.Display(domain.FieldPONumber)},
	}
	if id := form.Display(domain.FieldBillingID); id != "" {
		out = append(out, Pair{"Billing ID:", id})
	}
	return out
}

// servicesTable uses the credit layout for Credit/Usage Based forms and
// the five column layout otherwise.
func servicesTable(form domain.OrderForm) Table {
	period := ""
	if start := form.Display(domain.FieldStartDate); start != "" && form.Computed.EndDate != nil {
		period = start + " - " + form.Computed.EndDate.Format(domain.DisplayDateLayout)
	}
	credit := form.Display(domain.FieldWarehouseType) == domain.WarehouseCredit

	t := Table{Total: domain.FormatMoney(form.Computed.GrandTotal)}
	if credit {
		t.Headers = []string{"Subscription Term", "Services", "Credits", "Annual Fee"}
	} else {
		t.Headers = []string{"Subscription Period", "Service", "Annual Usage Commitment", "Unit", "Annual Service Fee"}
	}

	for _, item := range form.LineItems {
		p := period
		if p == "" {
			p = item.SubscriptionPeriod
		}
		fee := domain.FormatMoney(item.AnnualServiceFee)
		if credit {
			t.Rows = append(t.Rows, []string{p, item.Service, item.AnnualUsageCommitment, fee})
		} else {
			t.Rows = append(t.Rows, []string{p, item.Service, item.AnnualUsageCommitment, item.Unit, fee})
		}
	}
	return t
}

// usageTerms prefers the terms drafted from the products, then the typed
// usage terms, then the special terms.
func usageTerms(form domain.OrderForm) []string {
	if text := strings.TrimSpace(form.Computed.UsageTerms); text != "" {
		return strings.Split(text, "\n\n")
	}
	if text := strings.TrimSpace(form.Display(domain.FieldUsageTerms)); text != "" {
		return strings.Split(text, "\n")
	}
	if special := domain.NormalizeSpecialTerms(form.Display(domain.FieldSpecialTerms)); len(special) > 0 {
		return []string{strings.Join(special, ", ")}
	}
	return []string{domain.NoneSelected}
}

func agreement(form domain.OrderForm, company string) string {
	if form.Display(domain.FieldTermsType) == domain.TermsMSA {
		executed := form.Display(domain.FieldMSAExecutionDate)
		if executed == "" {
			executed = "MM/DD/YYYY"
		}
		return "This Order Form is subject to the Master Subscription Agreement (\"MSA\") between Customer and " +
			company + ", executed on " + executed + ", governing Customer's use of the Services described herein."
	}
	return "This Order Form is subject to the Enterprise Subscription Agreement and Data Processing Addendum " +
		"(together, the \"MSA\") governing Customer's use of the Services described herein."
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

// Wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than width are kept whole on their own line.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		line  strings.Builder
		n     int
	)
	for _, w := range words {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(w)
		n += wl
	}
	return append(lines, line.String())
}
