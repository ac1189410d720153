package domain

import "strings"

// Warehouse types offered on the order form.
const (
	WarehouseCloud  = "Cloud"
	WarehouseNative = "Warehouse Native"
	WarehouseCredit = "Credit/Usage Based"
)

// Product names that carry special pricing rules.
const (
	ProductFeatureGates       = "Feature Gates and SDKs"
	ProductExperimentation    = "Experimentation"
	ProductAnalysisOnly       = "Experimentation: Analysis Only"
	ProductAnalysisAssignment = "Experimentation: Analysis + Assignment"
	ProductSessionReplay      = "Session Replay"
	ProductWarehouseNative    = "Warehouse Native"
	ProductPlatformFee        = "Platform Fee"
)

// NoneSelected is written where a list of choices was left empty.
const NoneSelected = "None"

// UnitNotApplicable marks a usage or unit that does not apply to a row.
const UnitNotApplicable = "N/A"

// supportSuffix ends the service name of a support row.
const supportSuffix = " Support"

// WarehouseTypes returns the warehouse types in display order.
func WarehouseTypes() []string {
	return []string{WarehouseCloud, WarehouseNative, WarehouseCredit}
}

// SupportTiers returns the support tiers in display order.
func SupportTiers() []string {
	return []string{"Premium", "Standard", "Community"}
}

// ProductOptions returns the products sold under a warehouse type.
// An unknown warehouse type yields nil.
func ProductOptions(warehouseType string) []string {
	switch warehouseType {
	case WarehouseCloud:
		return []string{
			ProductFeatureGates,
			ProductExperimentation,
			"Advanced Product Analytics",
			ProductPlatformFee,
			ProductSessionReplay,
		}
	case WarehouseNative:
		return []string{
			ProductFeatureGates,
			"Advanced Product Analytics",
			ProductPlatformFee,
			ProductSessionReplay,
			ProductAnalysisOnly,
			ProductAnalysisAssignment,
		}
	case WarehouseCredit:
		return []string{ProductWarehouseNative, ProductPlatformFee}
	default:
		return nil
	}
}

// IsExperimentationService reports whether the service is billed on events.
func IsExperimentationService(service string) bool {
	return strings.HasPrefix(strings.TrimSpace(service), ProductExperimentation)
}

// IsSupportService reports whether the row is a support tier row.
func IsSupportService(service string) bool {
	return strings.HasSuffix(strings.TrimSpace(service), supportSuffix)
}

// SupportServiceName returns the row name for a support tier.
func SupportServiceName(tier string) string {
	return tier + supportSuffix
}

// DefaultUnit returns the unit label pre-filled for a service.
func DefaultUnit(service string) string {
	switch {
	case IsExperimentationService(service):
		return "Billable Events"
	case strings.TrimSpace(service) == ProductSessionReplay:
		return "Sessions"
	default:
		return UnitNotApplicable
	}
}

// DefaultUsage returns the usage commitment pre-filled for a service.
// Experimentation rows start empty because the user must supply a number.
func DefaultUsage(service string) string {
	if IsExperimentationService(service) {
		return ""
	}
	return UnitNotApplicable
}

// SelectedProducts returns the products of warehouseType that already have
// a row in items, in catalog order.
func SelectedProducts(items []ServiceLineItem, warehouseType string) []string {
	var out []string
	for _, name := range ProductOptions(warehouseType) {
		for _, item := range items {
			if strings.TrimSpace(item.Service) == name {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// SpecialTermOptions returns the legal special terms offered on the form.
func SpecialTermOptions() []string {
	return []string{"price cap", "no auto-renewal", "no logo rights", "one time discount"}
}

// NormalizeSpecialTerms splits a comma separated list of special terms.
// Blanks, "None" and repeats are dropped. Known terms take their listed
// spelling and anything else is kept as written.
func NormalizeSpecialTerms(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		term := strings.TrimSpace(part)
		if term == "" || strings.EqualFold(term, NoneSelected) {
			continue
		}
		if known, ok := canonicalTerm(term); ok {
			term = known
		}
		if !containsFold(out, term) {
			out = append(out, term)
		}
	}
	return out
}

func canonicalTerm(term string) (string, bool) {
	for _, opt := range SpecialTermOptions() {
		if equalFold(opt, term) {
			return opt, true
		}
	}
	return "", false
}
