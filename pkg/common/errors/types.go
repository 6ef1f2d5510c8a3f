package errors

import (
	"errors"
	"fmt"
)

// ValidationError describes an invalid argument passed to a constructor or operator.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes every ValidationError match ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// OperatorError reports a failure inside a user-supplied function run by an
// operator: either a returned error or a recovered panic.
type OperatorError struct {
	Operator string
	Cause    error
	// Panic holds the recovered value when the function panicked.
	Panic interface{}
}

// NewOperatorError wraps an error returned by a user function.
func NewOperatorError(operator string, cause error) *OperatorError {
	return &OperatorError{Operator: operator, Cause: cause}
}

// Recovered converts a recovered panic value into an OperatorError.
func Recovered(operator string, r interface{}) *OperatorError {
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	return &OperatorError{Operator: operator, Cause: cause, Panic: r}
}

func (e *OperatorError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("%s panicked: %v", e.Operator, e.Cause)
	}
	return fmt.Sprintf("%s failed: %v", e.Operator, e.Cause)
}

func (e *OperatorError) Unwrap() error {
	return e.Cause
}
