package errors

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidAxis, "test message: %s", "value")

	if err.Code != ErrCodeInvalidAxis {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidAxis)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_AXIS: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to render")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INTERNAL_ERROR: failed to render: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidBox, "test"),
			code:     ErrCodeInvalidBox,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidBox, "test"),
			code:     ErrCodeInvalidSigma,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("outer: %w", New(ErrCodeMissingColumn, "inner")),
			code:     ErrCodeMissingColumn,
			expected: true,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeMissingCoordinates, "test"), ErrCodeMissingCoordinates},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInputError(t *testing.T) {
	if !IsInputError(New(ErrCodeInvalidSigma, "x")) {
		t.Error("INVALID_SIGMA should be an input error")
	}
	if !IsInputError(fmt.Errorf("wrapped: %w", New(ErrCodeMissingCoordinates, "x"))) {
		t.Error("wrapped MISSING_COORDINATES should be an input error")
	}
	if IsInputError(New(ErrCodeInternal, "x")) {
		t.Error("INTERNAL_ERROR should not be an input error")
	}
	if IsInputError(errors.New("plain")) {
		t.Error("plain errors should not be input errors")
	}
}

func TestValidateSameLength(t *testing.T) {
	if err := ValidateSameLength([]string{"x", "y"}, []int{3, 3}); err != nil {
		t.Errorf("equal lengths: unexpected error %v", err)
	}
	if err := ValidateSameLength(nil, nil); err != nil {
		t.Errorf("empty: unexpected error %v", err)
	}
	err := ValidateSameLength([]string{"x", "y", "std"}, []int{3, 3, 2})
	if !Is(err, ErrCodeInvalidInput) {
		t.Fatalf("mismatch: got %v, want INVALID_INPUT", err)
	}
	if want := "std has 2 values, x has 3"; UserMessage(err) != want {
		t.Errorf("message = %q, want %q", UserMessage(err), want)
	}
}

func TestValidateLimits(t *testing.T) {
	tests := []struct {
		name    string
		lim     [2]float64
		wantErr bool
	}{
		{"increasing", [2]float64{0, 1}, false},
		{"reversed", [2]float64{180, -180}, false},
		{"degenerate", [2]float64{2, 2}, true},
		{"nan", [2]float64{0, math.NaN()}, true},
		{"inf", [2]float64{math.Inf(-1), 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLimits("x", tt.lim)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLimits(%v) error = %v, wantErr %v", tt.lim, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColumnName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "salt", false},
		{"with unit", "temp [degC]", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", string(make([]byte, 200)), true},
		{"control char", "sa\x01lt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumnName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColumnName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
