package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Form Errors.

	// ErrUnknownField indicates a field name that is not in the schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrTypeMismatch indicates a value whose type does not match its field.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidation indicates required fields are missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrIndexOutOfRange indicates a line item index outside the table.
	ErrIndexOutOfRange = errors.New("index out of range")

	// Wizard Errors.

	// ErrNoNextStep indicates Advance was called at the final step.
	ErrNoNextStep = errors.New("no next step")

	// ErrNoPreviousStep indicates GoBack was called at the first step.
	ErrNoPreviousStep = errors.New("no previous step")

	// ErrNotAtFinalStep indicates Generate was called before the final step.
	ErrNotAtFinalStep = errors.New("generate is only available at the final step")

	// History Errors.

	// ErrAmbiguousID indicates an ID prefix that matches more than one record.
	ErrAmbiguousID = errors.New("ambiguous id")
)

// UnknownFieldError reports a field name absent from the schema.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// Is matches ErrUnknownField.
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// TypeMismatchError reports a value that cannot be stored in a field.
type TypeMismatchError struct {
	Field    string
	Expected FieldType
	Got      FieldType
	// Reason is set when the type matches but the value is not acceptable,
	// for example an enum value outside the field options.
	Reason string
}

func (e *TypeMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q expects %s, got %s", e.Field, e.Expected, e.Got)
}

// Is matches ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ValidationError lists what blocks progression out of a wizard step.
type ValidationError struct {
	Step WizardStep

	// Missing holds required field names that are unset or blank.
	Missing []string

	// Invalid holds field names whose value does not fit the field.
	Invalid []string

	// Problems holds free-form messages, such as service table row checks.
	Problems []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(e.Invalid, ", "))
	}
	parts = append(parts, e.Problems...)
	if len(parts) == 0 {
		return fmt.Sprintf("step %s: validation failed", e.Step)
	}
	return fmt.Sprintf("step %s: %s", e.Step, strings.Join(parts, "; "))
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Empty reports whether the error carries no findings.
func (e *ValidationError) Empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0 && len(e.Problems) == 0
}

// IndexOutOfRangeError reports a line item index outside [0, Len).
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("line item index %d out of range [0, %d)", e.Index, e.Len)
}

// Is matches ErrIndexOutOfRange.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
