package validation

import (
	"testing"
	"time"

	"github.com/vnykmshr/rxflow/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 10, false},
		{"positive value 1", 1, false},
		{"zero value", 0, true},
		{"negative value", -1, true},
		{"large positive", 1000000, false},
		{"large negative", -1000000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("test", "count", tt.value)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 10, false},
		{"zero value", 0, false},
		{"negative value", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("test", "skip", tt.value)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateDurations(t *testing.T) {
	tests := []struct {
		name        string
		value       time.Duration
		positiveErr bool
		nonNegErr   bool
	}{
		{"positive", 300 * time.Millisecond, false, false},
		{"nanosecond", time.Nanosecond, false, false},
		{"zero", 0, true, false},
		{"negative", -time.Second, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveDuration("observable", "timespan", tt.value)
			if (err != nil) != tt.positiveErr {
				t.Errorf("ValidatePositiveDuration(%v) error = %v, want error %v", tt.value, err, tt.positiveErr)
			}

			err = ValidateNonNegativeDuration("observable", "delay", tt.value)
			if (err != nil) != tt.nonNegErr {
				t.Errorf("ValidateNonNegativeDuration(%v) error = %v, want error %v", tt.value, err, tt.nonNegErr)
			}
		})
	}
}

func TestValidateNotNil(t *testing.T) {
	tests := []struct {
		name      string
		value     interface{}
		wantError bool
	}{
		{"non-nil int", 123, false},
		{"non-nil string", "value", false},
		{"non-nil struct", struct{}{}, false},
		{"non-nil pointer", new(int), false},
		{"nil value", nil, true},
		{"nil pointer", (*int)(nil), false}, // typed nil is not nil interface
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotNil("test", "config", tt.value)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantError bool
	}{
		{"non-empty string", "value", false},
		{"single char", "a", false},
		{"whitespace", " ", false}, // Whitespace is not empty
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotEmpty("test", "name", tt.value)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidationErrorDetails(t *testing.T) {
	t.Run("ValidatePositive error details", func(t *testing.T) {
		err := ValidatePositive("scheduler", "workers", -5)

		valErr, ok := err.(*errors.ValidationError)
		if !ok {
			t.Fatalf("could not cast %T to ValidationError", err)
		}

		if valErr.Module != "scheduler" {
			t.Errorf("Module = %q, want %q", valErr.Module, "scheduler")
		}
		if valErr.Field != "workers" {
			t.Errorf("Field = %q, want %q", valErr.Field, "workers")
		}
		if valErr.Value != -5 {
			t.Errorf("Value = %v, want %v", valErr.Value, -5)
		}
		if valErr.Reason != "must be positive" {
			t.Errorf("Reason = %q, want %q", valErr.Reason, "must be positive")
		}
		if valErr.Hint != "value must be greater than 0" {
			t.Errorf("Hint = %q, want %q", valErr.Hint, "value must be greater than 0")
		}
	})

	t.Run("ValidateNotEmpty error details", func(t *testing.T) {
		err := ValidateNotEmpty("redissource", "channel", "")

		valErr, ok := err.(*errors.ValidationError)
		if !ok {
			t.Fatalf("could not cast %T to ValidationError", err)
		}

		if valErr.Reason != "cannot be empty" {
			t.Errorf("Reason = %q, want %q", valErr.Reason, "cannot be empty")
		}
		if valErr.Hint != "provide a non-empty channel" {
			t.Errorf("Hint = %q, want %q", valErr.Hint, "provide a non-empty channel")
		}
	})
}

func TestValidationErrorWrapping(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"ValidatePositive", ValidatePositive("test", "field", -1)},
		{"ValidateNonNegative", ValidateNonNegative("test", "field", -1)},
		{"ValidatePositiveDuration", ValidatePositiveDuration("test", "field", 0)},
		{"ValidateNotNil", ValidateNotNil("test", "field", nil)},
		{"ValidateNotEmpty", ValidateNotEmpty("test", "field", "")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsValidationError(tc.err) {
				t.Error("error should be a ValidationError")
			}
			if !errors.IsTerminalForRetry(tc.err) {
				t.Error("validation errors should not be retried")
			}
		})
	}
}
