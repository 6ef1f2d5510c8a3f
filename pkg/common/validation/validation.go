// Package validation provides common validation utilities for the rxflow library.
package validation

import (
	"time"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return rxerrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that an integer value is non-negative (>= 0).
// Returns a ValidationError if the value is negative.
func ValidateNonNegative(module, field string, value int) error {
	if value < 0 {
		return rxerrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is positive (> 0).
// Time windows of zero length would fire continuously.
func ValidatePositiveDuration(module, field string, value time.Duration) error {
	if value <= 0 {
		return rxerrors.NewValidationError(module, field, value, "must be positive").
			WithHint("use a duration such as 300*time.Millisecond")
	}
	return nil
}

// ValidateNonNegativeDuration validates that a duration is not negative.
func ValidateNonNegativeDuration(module, field string, value time.Duration) error {
	if value < 0 {
		return rxerrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive duration")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return rxerrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return rxerrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}
