package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

func fillCustomer(t *testing.T, form *FormState) {
	t.Helper()
	for name, raw := range map[string]string{
		domain.FieldCustomerName:        "Acme Corp",
		domain.FieldPrimaryContactName:  "Jane Doe",
		domain.FieldPrimaryContactEmail: "jane@acme.com",
		domain.FieldBillingEmail:        "ap@acme.com",
		domain.FieldShippingAddress:     "1 Main St",
		domain.FieldOpportunityType:     "New Logo",
	} {
		require.NoError(t, form.SetFieldText(name, raw), name)
	}
}

func fillTerms(t *testing.T, form *FormState) {
	t.Helper()
	require.NoError(t, form.SetFieldText(domain.FieldStartDate, "2024-03-01"))
}

func TestWizard_StartsAtInputSource(t *testing.T) {
	w := NewWizardController(newForm())
	assert.Equal(t, domain.StepInputSource, w.Current())
}

func TestWizard_AdvanceBlockedByMissingCustomerName(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	require.NoError(t, form.ClearField(domain.FieldCustomerName))
	w := NewWizardController(form)

	err := w.Advance()

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StepInputSource, verr.Step)
	assert.Contains(t, verr.Missing, domain.FieldCustomerName)
	assert.Equal(t, domain.StepInputSource, w.Current())
}

func TestWizard_BlankTextCountsAsMissing(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	require.NoError(t, form.SetField(domain.FieldCustomerName, domain.TextValue("   ")))
	w := NewWizardController(form)

	err := w.Advance()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{domain.FieldCustomerName}, verr.Missing)
}

func TestWizard_ConditionalRequirement(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	require.NoError(t, form.SetFieldText(domain.FieldOpportunityType, "Expansion/Upsell"))
	w := NewWizardController(form)

	err := w.Advance()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{domain.FieldAddendumEffectiveDate}, verr.Missing)

	require.NoError(t, form.SetFieldText(domain.FieldAddendumEffectiveDate, "2024-06-01"))
	require.NoError(t, w.Advance())
	assert.Equal(t, domain.StepTerms, w.Current())
}

func TestWizard_TermsUseDefaults(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	w := NewWizardController(form)
	require.NoError(t, w.Advance())

	err := w.Advance()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{domain.FieldStartDate}, verr.Missing)

	fillTerms(t, form)
	require.NoError(t, w.Advance())
	assert.Equal(t, domain.StepProducts, w.Current())
}

func TestWizard_BillingIDRequiredForMarketplaceBilling(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	fillTerms(t, form)
	require.NoError(t, form.SetFieldText(domain.FieldPaymentMethod, "GCP Billing"))
	w := NewWizardController(form)
	require.NoError(t, w.Advance())

	err := w.Advance()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{domain.FieldBillingID}, verr.Missing)
}

func TestWizard_AdvanceAtFinalStep(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	fillTerms(t, form)
	w := NewWizardController(form)
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())

	assert.ErrorIs(t, w.Advance(), domain.ErrNoNextStep)
	assert.Equal(t, domain.StepProducts, w.Current())
}

func TestWizard_GoBack(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	w := NewWizardController(form)

	assert.ErrorIs(t, w.GoBack(), domain.ErrNoPreviousStep)

	require.NoError(t, w.Advance())
	require.NoError(t, w.GoBack())
	assert.Equal(t, domain.StepInputSource, w.Current())

	v, ok := form.Value(domain.FieldCustomerName)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", v.Text())
}

func TestWizard_GenerateOnlyFromProducts(t *testing.T) {
	w := NewWizardController(newForm())
	renderer := &recordingRenderer{}

	_, err := w.Generate(context.Background(), renderer, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrNotAtFinalStep)
	assert.Empty(t, renderer.forms)
}

func TestWizard_GenerateValidatesProducts(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	fillTerms(t, form)
	w := NewWizardController(form)
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())

	_, err := w.Generate(context.Background(), &recordingRenderer{}, &bytes.Buffer{})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"at least one service is required"}, verr.Problems)

	require.NoError(t, form.SetFieldText(domain.FieldTermsType, "MSA"))
	form.AddLineItem(fee(1200))
	_, err = w.Generate(context.Background(), &recordingRenderer{}, &bytes.Buffer{})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{domain.FieldMSAExecutionDate}, verr.Missing)
}

func TestWizard_Generate(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	fillTerms(t, form)
	w := NewWizardController(form)
	w.SetIdentity("session-1", "Acme Seller")
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())

	support := fee(500)
	support.Service = domain.SupportServiceName("Premium")
	form.AddLineItem(support)
	form.AddLineItem(fee(1200))

	renderer := &recordingRenderer{}
	var out bytes.Buffer
	generated, err := w.Generate(context.Background(), renderer, &out)
	require.NoError(t, err)

	require.Len(t, renderer.forms, 1)
	assert.Equal(t, "order for Acme Corp", out.String())
	assert.Equal(t, "session-1", generated.ID)
	assert.Equal(t, "Acme Seller", generated.CompanyName)
	assert.Equal(t, "Net 30", generated.Display(domain.FieldPaymentTerms))
	assert.Equal(t, domain.ProductPlatformFee, generated.LineItems[0].Service)
	assert.Equal(t, "1700", generated.Computed.GrandTotal.String())
	assert.Equal(t, "1200", generated.Computed.LineTotals[0].String())
	require.NotNil(t, generated.Computed.EndDate)
}

func TestWizard_GenerateRendererFailure(t *testing.T) {
	form := newForm()
	fillCustomer(t, form)
	fillTerms(t, form)
	form.AddLineItem(fee(1))
	w := NewWizardController(form)
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())

	_, err := w.Generate(context.Background(), &recordingRenderer{err: errBoom}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errBoom)

	_, err = w.Generate(context.Background(), nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
