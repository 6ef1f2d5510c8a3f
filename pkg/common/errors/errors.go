package errors

import "errors"

// Common error types used across the rxflow library

var (
	// ErrEmptySource indicates that an operator needing at least one item
	// observed a source that completed without emitting any
	ErrEmptySource = errors.New("source completed without emitting items")

	// ErrShutdown indicates that work was scheduled on a scheduler that has been shut down
	ErrShutdown = errors.New("scheduler is shut down")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNilObservable indicates that an operator received a nil source
	ErrNilObservable = errors.New("observable is nil")
)

// IsTerminalForRetry returns true if the error can never be resolved by
// resubscribing to the same source
func IsTerminalForRetry(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) || errors.Is(err, ErrNilObservable)
}
