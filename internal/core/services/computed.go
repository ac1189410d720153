package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

const monthsPerYear = 12

// EndDate adds months to start using calendar-month arithmetic. The day of
// month is kept when the target month has it and clamped to the month's
// last day otherwise.
func EndDate(start time.Time, months int) time.Time {
	y, m, d := start.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}

// LineTotal is the amount billed for a row over the whole term: the annual
// fee, multiplied by the number of started contract years once the term
// runs past twelve months.
func LineTotal(item domain.ServiceLineItem, termMonths int) decimal.Decimal {
	if termMonths <= monthsPerYear {
		return item.AnnualServiceFee
	}
	years := (termMonths + monthsPerYear - 1) / monthsPerYear
	return item.AnnualServiceFee.Mul(decimal.NewFromInt(int64(years)))
}

// GrandTotal sums the line totals. An empty table totals zero.
func GrandTotal(items []domain.ServiceLineItem, termMonths int) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item, termMonths))
	}
	return total
}

// Recompute derives every computed value from the effective field values
// and the services table.
func Recompute(lookup func(name string) (domain.Value, bool), items []domain.ServiceLineItem) domain.Computed {
	term := domain.DefaultTermMonths
	if v, ok := lookup(domain.FieldSubscriptionTerm); ok && v.Type() == domain.FieldMonths {
		term = v.Months()
	}

	var c domain.Computed
	if start, ok := lookup(domain.FieldStartDate); ok && start.Type() == domain.FieldDate {
		end := EndDate(start.Date(), term)
		c.EndDate = &end
	}

	c.LineTotals = make([]decimal.Decimal, len(items))
	c.GrandTotal = decimal.Zero
	for i, item := range items {
		c.LineTotals[i] = LineTotal(item, term)
		c.GrandTotal = c.GrandTotal.Add(c.LineTotals[i])
	}

	warehouse := domain.WarehouseCloud
	if v, ok := lookup(domain.FieldWarehouseType); ok {
		warehouse = v.Text()
	}
	c.ExcessUsageRate = ExcessUsageRate(items, warehouse)
	c.UsageTerms = UsageTermsForProducts(warehouse, items, c.ExcessUsageRate)
	return c
}

// DefaultStartDate returns the first day of the month after now.
func DefaultStartDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// Suggestion returns the value offered for an empty field, if any. Only
// the start date has one.
func Suggestion(name string, now time.Time) (string, bool) {
	if name == domain.FieldStartDate {
		return DefaultStartDate(now).Format(domain.DateLayout), true
	}
	return "", false
}

// OutputFilename builds "MM.YYYY <Company> Order Form - <Customer>.pdf".
func OutputFilename(company, customer string, now time.Time, format domain.OutputFormat) string {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		customer = "Account Name"
	}
	customer = strings.NewReplacer("/", "-", "\\", "-").Replace(customer)
	return fmt.Sprintf("%s %s Order Form - %s%s", now.Format("01.2006"), company, customer, format.Extension())
}

var wholeNumber = regexp.MustCompile(`^\d+$`)

// parseWholeNumber reads "1,000,000" style counts. ok is false for anything
// that is not a non-negative integer.
func parseWholeNumber(s string) (int64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if !wholeNumber.MatchString(cleaned) {
		return 0, false
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	return n, err == nil
}

func findLineItem(items []domain.ServiceLineItem, services ...string) (domain.ServiceLineItem, bool) {
	for _, name := range services {
		for _, item := range items {
			if strings.TrimSpace(item.Service) == name {
				return item, true
			}
		}
	}
	return domain.ServiceLineItem{}, false
}

// ExcessUsageRate prices usage above the commitment. Cloud quotes per
// thousand billable events, Warehouse Native per event and credit plans per
// credit. Returns "N/A" when no rated row has a usable commitment.
func ExcessUsageRate(items []domain.ServiceLineItem, warehouseType string) string {
	var (
		item   domain.ServiceLineItem
		found  bool
		scale  = decimal.NewFromInt(1)
		places int32
	)
	switch warehouseType {
	case domain.WarehouseCloud:
		item, found = findLineItem(items, domain.ProductExperimentation)
		scale = decimal.NewFromInt(1000)
		places = 4
	case domain.WarehouseNative:
		item, found = findLineItem(items, domain.ProductAnalysisOnly, domain.ProductAnalysisAssignment)
		places = 2
	case domain.WarehouseCredit:
		item, found = findLineItem(items, domain.ProductWarehouseNative)
		places = 4
	}
	if !found {
		return domain.UnitNotApplicable
	}
	usage, ok := parseWholeNumber(item.AnnualUsageCommitment)
	if !ok || usage <= 0 {
		return domain.UnitNotApplicable
	}
	rate := item.AnnualServiceFee.Div(decimal.NewFromInt(usage)).Mul(scale)
	return rate.StringFixed(places)
}

// ValidateLineItems applies the services table format checks and returns
// one message per problem. An empty table is reported as a problem.
func ValidateLineItems(items []domain.ServiceLineItem, warehouseType string) []string {
	if len(items) == 0 {
		return []string{"at least one service is required"}
	}
	var problems []string
	for i, item := range items {
		row := i + 1
		service := strings.TrimSpace(item.Service)
		usage := strings.TrimSpace(item.AnnualUsageCommitment)
		if service == "" {
			problems = append(problems, fmt.Sprintf("row %d: service is required", row))
			continue
		}
		if item.AnnualServiceFee.IsNegative() {
			problems = append(problems, fmt.Sprintf("row %d (%s): annual service fee must not be negative", row, service))
		}
		_, whole := parseWholeNumber(usage)
		switch {
		case warehouseType == domain.WarehouseCredit:
			if !whole {
				problems = append(problems, fmt.Sprintf("row %d (%s): credits must be a whole number", row, service))
			}
		case domain.IsExperimentationService(service):
			if !whole {
				problems = append(problems, fmt.Sprintf("row %d (%s): annual usage commitment must be a whole number", row, service))
			}
		case !strings.EqualFold(usage, domain.UnitNotApplicable):
			problems = append(problems, fmt.Sprintf("row %d (%s): annual usage commitment must be N/A", row, service))
		}
	}
	return problems
}

// SortLineItems orders rows by descending fee with support rows last.
// The sort is stable so equal fees keep their order.
func SortLineItems(items []domain.ServiceLineItem) []domain.ServiceLineItem {
	out := append([]domain.ServiceLineItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].IsSupport(), out[j].IsSupport()
		if si != sj {
			return !si
		}
		return out[i].AnnualServiceFee.GreaterThan(out[j].AnnualServiceFee)
	})
	return out
}

// BuildLineItems lays out one row per product plus a support row for tier.
// Rows for services already present in existing keep their values.
func BuildLineItems(products []string, supportTier string, existing []domain.ServiceLineItem) []domain.ServiceLineItem {
	byService := make(map[string]domain.ServiceLineItem, len(existing))
	for _, item := range existing {
		if name := strings.TrimSpace(item.Service); name != "" {
			byService[name] = item
		}
	}

	names := append([]string(nil), products...)
	if strings.TrimSpace(supportTier) != "" {
		names = append(names, domain.SupportServiceName(supportTier))
	}

	out := make([]domain.ServiceLineItem, 0, len(names))
	for _, name := range names {
		if item, ok := byService[name]; ok {
			out = append(out, item)
			continue
		}
		out = append(out, domain.NewLineItem(name))
	}
	return out
}
