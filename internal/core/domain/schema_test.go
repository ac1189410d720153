package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchema_Shape(t *testing.T) {
	schema := DefaultSchema()

	names := schema.Names()
	assert.Equal(t, FieldCustomerName, names[0])
	assert.Equal(t, FieldUsageTerms, names[len(names)-1])
	assert.Equal(t, len(names), schema.Len())

	seen := map[string]bool{}
	for _, d := range schema.Fields() {
		assert.False(t, seen[d.Name], "duplicate %s", d.Name)
		seen[d.Name] = true
		assert.True(t, d.Type.IsValid(), d.Name)
		assert.NotEmpty(t, d.Label, d.Name)
	}
}

func TestFieldSchema_Get(t *testing.T) {
	schema := DefaultSchema()

	d, err := schema.Get(FieldCustomerName)
	require.NoError(t, err)
	assert.Equal(t, "Customer Name", d.Label)
	assert.True(t, d.Required)

	_, err = schema.Get("favourite_colour")
	assert.ErrorIs(t, err, ErrUnknownField)
	var unknown *UnknownFieldError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "favourite_colour", unknown.Name)
}

func TestFieldSchema_ReturnsCopies(t *testing.T) {
	schema := DefaultSchema()

	fields := schema.Fields()
	fields[0].Label = "changed"
	fields[0].Aliases[0] = "changed"

	d, err := schema.Get(FieldCustomerName)
	require.NoError(t, err)
	assert.Equal(t, "Customer Name", d.Label)
	assert.Equal(t, "Account Name", d.Aliases[0])
}

func TestFieldSchema_FieldsForStep(t *testing.T) {
	schema := DefaultSchema()

	total := 0
	for _, step := range AllSteps() {
		fields := schema.FieldsForStep(step)
		assert.NotEmpty(t, fields, step.String())
		for _, f := range fields {
			assert.Equal(t, step, f.Step)
		}
		total += len(fields)
	}
	assert.Equal(t, schema.Len(), total)
}

func TestFieldSchema_RequiredFor_Conditional(t *testing.T) {
	schema := DefaultSchema()
	values := map[string]Value{}
	lookup := func(name string) (Value, bool) {
		v, ok := values[name]
		return v, ok
	}
	names := func(defs []FieldDefinition) []string {
		var out []string
		for _, d := range defs {
			out = append(out, d.Name)
		}
		return out
	}

	assert.NotContains(t, names(schema.RequiredFor(StepInputSource, lookup)), FieldAddendumEffectiveDate)
	values[FieldOpportunityType] = EnumValue(OpportunityExpansion)
	assert.Contains(t, names(schema.RequiredFor(StepInputSource, lookup)), FieldAddendumEffectiveDate)

	values[FieldPaymentMethod] = EnumValue(PaymentBankTransfer)
	assert.NotContains(t, names(schema.RequiredFor(StepTerms, lookup)), FieldBillingID)
	values[FieldPaymentMethod] = EnumValue("AWS Billing")
	assert.Contains(t, names(schema.RequiredFor(StepTerms, lookup)), FieldBillingID)

	assert.NotContains(t, names(schema.RequiredFor(StepProducts, lookup)), FieldMSAExecutionDate)
	values[FieldTermsType] = EnumValue(TermsMSA)
	assert.Contains(t, names(schema.RequiredFor(StepProducts, lookup)), FieldMSAExecutionDate)
}

func TestNewFieldSchema_Rejects(t *testing.T) {
	tests := []struct {
		name string
		defs []FieldDefinition
		err  error
	}{
		{
			name: "duplicate",
			defs: []FieldDefinition{
				{Name: "a", Label: "A", Type: FieldText},
				{Name: "a", Label: "A", Type: FieldText},
			},
			err: ErrInvalidInput,
		},
		{
			name: "bad type",
			defs: []FieldDefinition{{Name: "a", Label: "A", Type: "colour"}},
			err:  ErrUnsupportedType,
		},
		{
			name: "enum without options",
			defs: []FieldDefinition{{Name: "a", Label: "A", Type: FieldEnum}},
			err:  ErrInvalidInput,
		},
		{
			name: "condition on unknown field",
			defs: []FieldDefinition{
				{Name: "a", Label: "A", Type: FieldText, RequiredWhen: &Condition{Field: "b", In: []string{"x"}}},
			},
			err: ErrUnknownField,
		},
		{
			name: "default of wrong type",
			defs: []FieldDefinition{{Name: "a", Label: "A", Type: FieldMonths, Default: defaultValue(TextValue("12"))}},
			err:  ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFieldSchema(tt.defs)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMustFieldSchema_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustFieldSchema([]FieldDefinition{{Name: ""}})
	})
}

func TestCondition_Holds(t *testing.T) {
	in := Condition{Field: "x", In: []string{"MSA"}}
	assert.True(t, in.Holds("msa", true))
	assert.False(t, in.Holds("Online", true))
	assert.False(t, in.Holds("", false))

	notIn := Condition{Field: "x", NotIn: []string{"Bank Transfer"}}
	assert.False(t, notIn.Holds("Bank Transfer", true))
	assert.True(t, notIn.Holds("AWS Billing", true))
	assert.True(t, notIn.Holds("", false))
}
