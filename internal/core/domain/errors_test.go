package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrUnknownField", ErrUnknownField},
		{"ErrTypeMismatch", ErrTypeMismatch},
		{"ErrValidation", ErrValidation},
		{"ErrIndexOutOfRange", ErrIndexOutOfRange},
		{"ErrNoNextStep", ErrNoNextStep},
		{"ErrNoPreviousStep", ErrNoPreviousStep},
		{"ErrNotAtFinalStep", ErrNotAtFinalStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestTypedErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"unknown field", &UnknownFieldError{Name: "x"}, ErrUnknownField},
		{"type mismatch", &TypeMismatchError{Field: "x", Expected: FieldDate, Got: FieldText}, ErrTypeMismatch},
		{"validation", &ValidationError{Step: StepTerms, Missing: []string{"start_date"}}, ErrValidation},
		{"index", &IndexOutOfRangeError{Index: 3, Len: 1}, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.False(t, errors.Is(tt.err, ErrNotFound))

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestUnknownFieldError_Message(t *testing.T) {
	err := &UnknownFieldError{Name: "colour"}
	assert.Equal(t, `unknown field "colour"`, err.Error())

	var target *UnknownFieldError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &target))
	assert.Equal(t, "colour", target.Name)
}

func TestTypeMismatchError_Message(t *testing.T) {
	err := &TypeMismatchError{Field: "start_date", Expected: FieldDate, Got: FieldText}
	assert.Equal(t, `field "start_date" expects date, got text`, err.Error())

	withReason := &TypeMismatchError{Field: "payment_terms", Expected: FieldEnum, Got: FieldEnum, Reason: "bad option"}
	assert.Equal(t, `field "payment_terms": bad option`, withReason.Error())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Step:     StepProducts,
		Missing:  []string{"warehouse_type"},
		Invalid:  []string{"msa_execution_date"},
		Problems: []string{"add at least one service"},
	}
	assert.Equal(t,
		"step products: missing: warehouse_type; invalid: msa_execution_date; add at least one service",
		err.Error())
	assert.False(t, err.Empty())
	assert.True(t, (&ValidationError{}).Empty())
}

func TestIndexOutOfRangeError_Message(t *testing.T) {
	err := &IndexOutOfRangeError{Index: 5, Len: 2}
	assert.Equal(t, "line item index 5 out of range [0, 2)", err.Error())
}
