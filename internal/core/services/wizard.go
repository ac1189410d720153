package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

// WizardController sequences the three wizard steps over a FormState.
// It moves forward only when the current step validates and never skips.
type WizardController struct {
	form    *FormState
	step    domain.WizardStep
	now     func() time.Time
	id      string
	company string
}

// NewWizardController starts a wizard at the first step.
func NewWizardController(form *FormState) *WizardController {
	return &WizardController{form: form, step: domain.StepInputSource, now: time.Now}
}

// SetIdentity sets the session ID and seller name stamped on snapshots.
func (w *WizardController) SetIdentity(id, company string) {
	w.id = id
	w.company = company
}

// Current returns the active step.
func (w *WizardController) Current() domain.WizardStep { return w.step }

// Form returns the form being edited.
func (w *WizardController) Form() *FormState { return w.form }

// Validate checks the fields collected by step. It returns nil when the
// step is complete. Products additionally checks the services table.
func (w *WizardController) Validate(step domain.WizardStep) *domain.ValidationError {
	verr := &domain.ValidationError{Step: step}
	schema := w.form.Schema()

	for _, def := range schema.FieldsForStep(step) {
		v, set := w.form.Effective(def.Name)
		if set && def.Check(v) != nil {
			verr.Invalid = append(verr.Invalid, def.Name)
			continue
		}
		if def.IsRequired(w.form.Effective) && (!set || v.IsBlank()) {
			verr.Missing = append(verr.Missing, def.Name)
		}
	}

	if step == domain.StepProducts {
		warehouse := domain.WarehouseCloud
		if v, ok := w.form.Effective(domain.FieldWarehouseType); ok {
			warehouse = v.Text()
		}
		verr.Problems = append(verr.Problems, ValidateLineItems(w.form.LineItems(), warehouse)...)
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// Advance moves to the next step. It fails with a *domain.ValidationError
// when the current step is incomplete and with domain.ErrNoNextStep at the
// final step; the step is unchanged on failure.
func (w *WizardController) Advance() error {
	next, ok := w.step.Next()
	if !ok {
		return domain.ErrNoNextStep
	}
	if verr := w.Validate(w.step); verr != nil {
		return verr
	}
	w.step = next
	return nil
}

// GoBack moves to the previous step. Values are kept.
func (w *WizardController) GoBack() error {
	prev, ok := w.step.Prev()
	if !ok {
		return domain.ErrNoPreviousStep
	}
	w.step = prev
	return nil
}

// Snapshot builds the renderer input from the current form.
func (w *WizardController) Snapshot() domain.OrderForm {
	return domain.OrderForm{
		ID:          w.id,
		CompanyName: w.company,
		Values:      w.form.EffectiveValues(),
		LineItems:   SortLineItems(w.form.LineItems()),
		GeneratedAt: w.now(),
	}
}

// Generate validates the final step and hands the form to renderer.
func (w *WizardController) Generate(ctx context.Context, renderer driven.DocumentRenderer, out io.Writer) (*domain.OrderForm, error) {
	if !w.step.IsLast() {
		return nil, domain.ErrNotAtFinalStep
	}
	if renderer == nil {
		return nil, fmt.Errorf("%w: no renderer configured", domain.ErrInvalidInput)
	}
	if verr := w.Validate(w.step); verr != nil {
		return nil, verr
	}
	form := w.Snapshot()
	// Totals follow the sorted table so line totals line up with rows.
	form.Computed = Recompute(w.form.Effective, form.LineItems)
	if err := renderer.Render(ctx, form, out); err != nil {
		return nil, err
	}
	return &form, nil
}
