package domain

// WizardStep is one of the three stages of the order-form wizard.
type WizardStep int

const (
	// StepInputSource collects customer details, manually or from a document.
	StepInputSource WizardStep = iota

	// StepTerms collects subscription and billing terms.
	StepTerms

	// StepProducts collects the services table and agreement terms.
	StepProducts
)

// AllSteps returns the steps in wizard order.
func AllSteps() []WizardStep {
	return []WizardStep{StepInputSource, StepTerms, StepProducts}
}

// IsValid returns true if the step is recognised.
func (s WizardStep) IsValid() bool {
	return s >= StepInputSource && s <= StepProducts
}

// IsFirst reports whether s is the first step.
func (s WizardStep) IsFirst() bool { return s == StepInputSource }

// IsLast reports whether s is the final step.
func (s WizardStep) IsLast() bool { return s == StepProducts }

// Next returns the following step. ok is false at the final step.
func (s WizardStep) Next() (WizardStep, bool) {
	if s.IsLast() {
		return s, false
	}
	return s + 1, true
}

// Prev returns the preceding step. ok is false at the first step.
func (s WizardStep) Prev() (WizardStep, bool) {
	if s.IsFirst() {
		return s, false
	}
	return s - 1, true
}

// String returns the string representation.
func (s WizardStep) String() string {
	switch s {
	case StepInputSource:
		return "input_source"
	case StepTerms:
		return "terms"
	case StepProducts:
		return "products"
	default:
		return "unknown"
	}
}

// Title returns the heading shown for the step.
func (s WizardStep) Title() string {
	switch s {
	case StepInputSource:
		return "Customer"
	case StepTerms:
		return "Terms"
	case StepProducts:
		return "Products"
	default:
		return unknownDescription
	}
}

const unknownDescription = "Unknown"
