package domain

import (
	"fmt"
	"strings"
)

// Field names of the default order-form schema.
const (
	FieldCustomerName          = "customer_name"
	FieldPrimaryContactName    = "primary_contact_name"
	FieldPrimaryContactEmail   = "primary_contact_email"
	FieldBillingEmail          = "billing_email"
	FieldShippingAddress       = "shipping_address"
	FieldBillingAddress        = "billing_address"
	FieldOpportunityType       = "opportunity_type"
	FieldAddendumEffectiveDate = "addendum_effective_date"
	FieldStartDate             = "start_date"
	FieldSubscriptionTerm      = "subscription_term_months"
	FieldBillingFrequency      = "billing_frequency"
	FieldPaymentTerms          = "payment_terms"
	FieldPaymentMethod         = "payment_method"
	FieldBillingID             = "billing_id"
	FieldPONumber              = "po_number"
	FieldWarehouseType         = "warehouse_type"
	FieldSupportTier           = "support_tier"
	FieldTermsType             = "terms_type"
	FieldMSAExecutionDate      = "msa_execution_date"
	FieldSpecialTerms          = "special_terms"
	FieldExpirationDate        = "expiration_date"
	FieldUsageTerms            = "usage_terms"
)

// Option values referenced by conditional requirements.
const (
	OpportunityExpansion = "Expansion/Upsell"
	PaymentBankTransfer  = "Bank Transfer"
	TermsOnline          = "Online"
	TermsMSA             = "MSA"
)

// DefaultTermMonths is the subscription term used when none is given.
const DefaultTermMonths = 12

// MaxTermMonths bounds a subscription term at one hundred years.
const MaxTermMonths = 1200

// FieldSchema is the ordered, immutable set of order-form fields.
type FieldSchema struct {
	fields []FieldDefinition
	index  map[string]int
}

// NewFieldSchema validates the definitions and builds a schema.
func NewFieldSchema(defs []FieldDefinition) (*FieldSchema, error) {
	s := &FieldSchema{
		fields: make([]FieldDefinition, 0, len(defs)),
		index:  make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: field without a name", ErrInvalidInput)
		}
		if _, dup := s.index[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidInput, d.Name)
		}
		if !d.Type.IsValid() {
			return nil, fmt.Errorf("%w: field %q has type %q", ErrUnsupportedType, d.Name, d.Type)
		}
		if !d.Step.IsValid() {
			return nil, fmt.Errorf("%w: field %q has no step", ErrInvalidInput, d.Name)
		}
		if d.Type == FieldEnum && len(d.Options) == 0 {
			return nil, fmt.Errorf("%w: enum field %q has no options", ErrInvalidInput, d.Name)
		}
		if d.Default != nil {
			if err := d.Check(*d.Default); err != nil {
				return nil, fmt.Errorf("default for %q: %w", d.Name, err)
			}
		}
		s.index[d.Name] = len(s.fields)
		s.fields = append(s.fields, d.clone())
	}
	for _, d := range s.fields {
		if d.RequiredWhen != nil {
			if _, ok := s.index[d.RequiredWhen.Field]; !ok {
				return nil, fmt.Errorf("field %q: condition on %w", d.Name, &UnknownFieldError{Name: d.RequiredWhen.Field})
			}
		}
	}
	return s, nil
}

// MustFieldSchema is like NewFieldSchema but panics on error.
func MustFieldSchema(defs []FieldDefinition) *FieldSchema {
	s, err := NewFieldSchema(defs)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns a copy of the definitions in declaration order.
func (s *FieldSchema) Fields() []FieldDefinition {
	out := make([]FieldDefinition, len(s.fields))
	for i, d := range s.fields {
		out[i] = d.clone()
	}
	return out
}

// Names returns the field names in declaration order.
func (s *FieldSchema) Names() []string {
	out := make([]string, len(s.fields))
	for i, d := range s.fields {
		out[i] = d.Name
	}
	return out
}

// Len returns the number of fields.
func (s *FieldSchema) Len() int { return len(s.fields) }

// Has reports whether the schema declares name.
func (s *FieldSchema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get returns the definition for name.
func (s *FieldSchema) Get(name string) (FieldDefinition, error) {
	i, ok := s.index[name]
	if !ok {
		return FieldDefinition{}, &UnknownFieldError{Name: name}
	}
	return s.fields[i].clone(), nil
}

// FieldsForStep returns the definitions collected by step, in order.
func (s *FieldSchema) FieldsForStep(step WizardStep) []FieldDefinition {
	var out []FieldDefinition
	for _, d := range s.fields {
		if d.Step == step {
			out = append(out, d.clone())
		}
	}
	return out
}

// RequiredFor returns the fields of step that are required given the
// effective values reported by lookup.
func (s *FieldSchema) RequiredFor(step WizardStep, lookup func(name string) (Value, bool)) []FieldDefinition {
	var out []FieldDefinition
	for _, d := range s.fields {
		if d.Step == step && d.IsRequired(lookup) {
			out = append(out, d.clone())
		}
	}
	return out
}

func defaultValue(v Value) *Value { return &v }

// DefaultSchema returns the standard order-form schema.
func DefaultSchema() *FieldSchema {
	return MustFieldSchema(defaultFields())
}

func defaultFields() []FieldDefinition {
	return []FieldDefinition{
		// Customer
		{
			Name: FieldCustomerName, Label: "Customer Name", Type: FieldText, Step: StepInputSource,
			Required: true,
			Aliases:  []string{"Account Name", "Customer", "Account"},
		},
		{
			Name: FieldPrimaryContactName, Label: "Primary Contact", Type: FieldText, Step: StepInputSource,
			Required: true,
			Aliases:  []string{"Primary Contact Name", "Contact Name", "Contact"},
		},
		{
			Name: FieldPrimaryContactEmail, Label: "Primary Contact Email", Type: FieldEmail, Step: StepInputSource,
			Required: true,
			Aliases:  []string{"Contact Email", "Customer Contact", "Email"},
		},
		{
			Name: FieldBillingEmail, Label: "Billing Email", Type: FieldEmail, Step: StepInputSource,
			Required: true,
			Aliases:  []string{"Invoice Email"},
		},
		{
			Name: FieldShippingAddress, Label: "Ship To Address", Type: FieldText, Step: StepInputSource,
			Required: true,
			Aliases:  []string{"Shipping Address", "Ship To", "Address"},
		},
		{
			Name: FieldBillingAddress, Label: "Bill To Address", Type: FieldText, Step: StepInputSource,
			Required: true,
			Aliases:  []string{"Billing Address", "Bill To"},
			Default:  defaultValue(TextValue("Same as shipping address")),
		},
		{
			Name: FieldOpportunityType, Label: "Opportunity Type", Type: FieldEnum, Step: StepInputSource,
			Required: true,
			Aliases:  []string{"Deal Type", "Deal Label"},
			Options:  []string{"New Logo", "Renewal", OpportunityExpansion},
		},
		{
			Name: FieldAddendumEffectiveDate, Label: "Upsell Effective Date", Type: FieldDate, Step: StepInputSource,
			RequiredWhen: &Condition{Field: FieldOpportunityType, In: []string{OpportunityExpansion}},
			Aliases:      []string{"Addendum Effective Date", "Effective Date"},
			Help:         "Required for Expansion/Upsell",
		},

		// Terms
		{
			Name: FieldStartDate, Label: "Subscription Start Date", Type: FieldDate, Step: StepTerms,
			Required: true,
			Aliases:  []string{"Subscription Start", "Start Date"},
			Help:     "YYYY-MM-DD or MM/DD/YYYY",
		},
		{
			Name: FieldSubscriptionTerm, Label: "Subscription Term (Months)", Type: FieldMonths, Step: StepTerms,
			Required: true,
			Aliases:  []string{"Subscription Term", "Term Months", "Term"},
			Default:  defaultValue(MonthsValue(DefaultTermMonths)),
		},
		{
			Name: FieldBillingFrequency, Label: "Billing Frequency", Type: FieldEnum, Step: StepTerms,
			Required: true,
			Aliases:  []string{"Frequency"},
			Options:  []string{"Annual", "Semi-Annual", "Quarterly"},
			Default:  defaultValue(EnumValue("Annual")),
		},
		{
			Name: FieldPaymentTerms, Label: "Payment Terms", Type: FieldEnum, Step: StepTerms,
			Required: true,
			Options:  []string{"Net 30", "Net 45", "Net 60", "Net 90"},
			Default:  defaultValue(EnumValue("Net 30")),
		},
		{
			Name: FieldPaymentMethod, Label: "Payment Method", Type: FieldEnum, Step: StepTerms,
			Required: true,
			Options:  []string{PaymentBankTransfer, "AWS Billing", "GCP Billing", "Azure Billing"},
			Default:  defaultValue(EnumValue(PaymentBankTransfer)),
		},
		{
			Name: FieldBillingID, Label: "Billing ID", Type: FieldText, Step: StepTerms,
			RequiredWhen: &Condition{Field: FieldPaymentMethod, NotIn: []string{PaymentBankTransfer}},
			Aliases:      []string{"AWS Billing ID", "GCP Billing ID", "Azure Billing ID"},
			Help:         "Marketplace account for cloud billing",
		},
		{
			Name: FieldPONumber, Label: "PO Number", Type: FieldText, Step: StepTerms,
			Aliases: []string{"Purchase Order", "PO"},
		},

		// Products
		{
			Name: FieldWarehouseType, Label: "Warehouse Type", Type: FieldEnum, Step: StepProducts,
			Required: true,
			Options:  WarehouseTypes(),
			Default:  defaultValue(EnumValue(WarehouseCloud)),
		},
		{
			Name: FieldSupportTier, Label: "Support Tier", Type: FieldEnum, Step: StepProducts,
			Options: SupportTiers(),
		},
		{
			Name: FieldTermsType, Label: "Terms Type", Type: FieldEnum, Step: StepProducts,
			Aliases: []string{"Agreement Type"},
			Options: []string{TermsOnline, TermsMSA},
			Default: defaultValue(EnumValue(TermsOnline)),
		},
		{
			Name: FieldMSAExecutionDate, Label: "MSA Execution Date", Type: FieldDate, Step: StepProducts,
			RequiredWhen: &Condition{Field: FieldTermsType, In: []string{TermsMSA}},
			Aliases:      []string{"MSA Executed On", "MSA Date"},
		},
		{
			Name: FieldSpecialTerms, Label: "Special Terms", Type: FieldText, Step: StepProducts,
			Aliases: []string{"Legal: Special Terms", "Legal Special Terms"},
			Help:    "Comma separated: " + strings.Join(SpecialTermOptions(), ", "),
		},
		{
			Name: FieldExpirationDate, Label: "Quote Expiration Date", Type: FieldDate, Step: StepProducts,
			Aliases: []string{"Quote Expiration", "Expiration Date", "Expires On"},
		},
		{
			Name: FieldUsageTerms, Label: "Usage Terms", Type: FieldText, Step: StepProducts,
			Aliases: []string{"Terms Details", "Notes"},
		},
	}
}
