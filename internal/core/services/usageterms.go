package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// Older product names still found on imported tables.
const (
	legacyAnalysisOnly       = "Warehouse Native: Analysis"
	legacyAnalysisAssignment = "Warehouse Native: Experimentation (Analysis + Assignment)"
)

const gateCheckAllowance = "Customer may use up to 100,000,000,000 non-analytic Feature Gate and config checks " +
	"through all server and client-side SDKs during each subscription period."

const sessionReplayTerms = "Customer will have access to 50,000 recorded user sessions on a rolling 30-day basis, " +
	"for a total of 600,000 during the Paid Subscription Term. New sessions above 50,000 in a 30-day window " +
	"will not be recorded or stored. Customer can control session recording frequency by adjusting sample rate."

func cloudEventTerms(rate string) []string {
	return []string{
		"Customer has access to the number of billable events specified in the table above during the " +
			"applicable subscription period (\"Annual Usage Commitment\"). Unused billable events expire at the " +
			"end of the applicable subscription period and cannot be rolled over to a future subscription period.",
		"A billable event is recorded when Customer's application uses the platform SDKs or APIs to check the " +
			"value of an experiment, analytics-enabled gate, or layer. Exposure events for identical users and " +
			"features or experiments are deduplicated within each hour on a client-side SDK and within each " +
			"minute on a server-side SDK.",
		"A billable event is also recorded each time Customer logs an event through the platform SDKs, ingests " +
			"a metric, or computes a custom metric. Customer can add one event dimension for each logged event " +
			"without incurring an additional billable event. Every additional dimension records an extra log event.",
		"Checks for experiments that result in no allocation (i.e., if the experiment hasn't commenced or has " +
			"concluded) or Feature Gates that are deactivated (i.e., fully launched or discarded without any rule " +
			"evaluation) do not generate billable events.",
		gateCheckAllowance,
		"If Customer exceeds the Annual Usage Commitment during the applicable subscription period, Customer " +
			"shall be invoiced monthly in arrears for any excess usage at a rate of " + rate + " per 1,000 billable events.",
	}
}

func experimentTerms(rate string, assignment bool) []string {
	out := []string{
		"Customer has access to the number of experiments specified in the table above during the applicable " +
			"subscription period (\"Annual Usage Commitment\"). Unused experiments expire at the end of the " +
			"applicable subscription period and cannot be rolled over to a future subscription period.",
		"Experiment is defined as an experiment or a feature rollout that results in metric lifts being computed. " +
			"Feature rollouts configured to not compute metric lifts are not counted as experiments. The same " +
			"experiment being restarted is not counted as a new experiment.",
	}
	if assignment {
		out = append(out, "Customer may use up to 100,000,000,000 Feature Gate checks through all server and "+
			"client-side SDKs. Customer may also forward up to 100,000,000,000 exposures to their data warehouse "+
			"using the platform SDKs.")
	}
	return append(out, "If Customer exceeds the Annual Usage Commitment during the applicable subscription "+
		"period, Customer shall be invoiced monthly in arrears for any excess usage at a rate of "+rate+" per experiment.")
}

// productsOnTable lists the distinct services of the table, with every
// support tier reported as "Support".
func productsOnTable(items []domain.ServiceLineItem) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Service)
		switch {
		case name == "":
		case item.IsSupport():
			out["Support"] = true
		default:
			out[name] = true
		}
	}
	return out
}

// UsageTermsForProducts drafts the usage terms for the products on the
// services table. Cloud terms depend on whether experimentation is sold
// alongside Feature Gates, Warehouse Native terms on whether assignment is
// included, and Session Replay adds its session allowance to either.
// Credit plans get no drafted terms. rate is the excess usage rate as
// returned by ExcessUsageRate.
func UsageTermsForProducts(warehouseType string, items []domain.ServiceLineItem, rate string) string {
	products := productsOnTable(items)
	has := func(names ...string) bool {
		for _, n := range names {
			if products[n] {
				return true
			}
		}
		return false
	}

	amount, err := domain.ParseMoney(rate)
	if err != nil {
		amount = decimal.Zero
	}
	rateText := domain.FormatMoney(amount)

	var paragraphs []string
	switch warehouseType {
	case domain.WarehouseCloud:
		gates := has(domain.ProductFeatureGates)
		experiments := has(domain.ProductExperimentation, domain.ProductAnalysisOnly, domain.ProductAnalysisAssignment)
		switch {
		case gates && experiments:
			paragraphs = cloudEventTerms(rateText)
		case gates:
			paragraphs = []string{gateCheckAllowance}
		}
	case domain.WarehouseNative:
		switch {
		case has(domain.ProductAnalysisAssignment, legacyAnalysisAssignment):
			paragraphs = experimentTerms(rateText, true)
		case has(domain.ProductAnalysisOnly, legacyAnalysisOnly):
			paragraphs = experimentTerms(rateText, false)
		}
	default:
		return ""
	}

	if has(domain.ProductSessionReplay) {
		paragraphs = append(paragraphs, sessionReplayTerms)
	}
	return strings.Join(paragraphs, "\n\n")
}
