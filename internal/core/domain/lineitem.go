package domain

import "github.com/shopspring/decimal"

// DefaultSubscriptionPeriod labels rows that cover the whole term.
const DefaultSubscriptionPeriod = "Subscription Term"

// ServiceLineItem is one row of the services table.
type ServiceLineItem struct {
	// SubscriptionPeriod describes the billed period, e.g. "Subscription Term".
	SubscriptionPeriod string

	// Service is the product or support tier name.
	Service string

	// AnnualUsageCommitment is the committed usage or credits, or "N/A".
	AnnualUsageCommitment string

	// Unit is the usage unit, e.g. "Billable Events".
	Unit string

	// AnnualServiceFee is the yearly fee for the row.
	AnnualServiceFee decimal.Decimal
}

// NewLineItem returns a row for service with the catalog defaults filled in.
func NewLineItem(service string) ServiceLineItem {
	return ServiceLineItem{
		SubscriptionPeriod:    DefaultSubscriptionPeriod,
		Service:               service,
		AnnualUsageCommitment: DefaultUsage(service),
		Unit:                  DefaultUnit(service),
		AnnualServiceFee:      decimal.Zero,
	}
}

// IsSupport reports whether the row is a support tier row.
func (i ServiceLineItem) IsSupport() bool {
	return IsSupportService(i.Service)
}

// Equal reports whether two rows hold the same content.
func (i ServiceLineItem) Equal(o ServiceLineItem) bool {
	return i.SubscriptionPeriod == o.SubscriptionPeriod &&
		i.Service == o.Service &&
		i.AnnualUsageCommitment == o.AnnualUsageCommitment &&
		i.Unit == o.Unit &&
		i.AnnualServiceFee.Equal(o.AnnualServiceFee)
}
