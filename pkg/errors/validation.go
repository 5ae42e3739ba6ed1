package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateSameLength checks that every named slice has the length of the first one.
// names and lengths are parallel; names are only used in the error message.
func ValidateSameLength(names []string, lengths []int) error {
	if len(lengths) == 0 {
		return nil
	}
	for i := 1; i < len(lengths); i++ {
		if lengths[i] != lengths[0] {
			return New(ErrCodeInvalidInput, "%s has %d values, %s has %d",
				names[i], lengths[i], names[0], lengths[0])
		}
	}
	return nil
}

// ValidateLimits checks that lim is a finite, non-degenerate interval.
// Reversed limits are accepted; callers decide what a reversed interval means.
func ValidateLimits(name string, lim [2]float64) error {
	for _, v := range lim {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "%s limits must be finite, got [%g, %g]", name, lim[0], lim[1])
		}
	}
	if lim[0] == lim[1] {
		return New(ErrCodeInvalidInput, "%s limits are degenerate: [%g, %g]", name, lim[0], lim[1])
	}
	return nil
}

// ValidateColumnName validates a column name taken from a data file header or a flag.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "column name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "column name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name contains invalid control characters")
		}
	}
	return nil
}
