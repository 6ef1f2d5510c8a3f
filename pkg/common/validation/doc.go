// Package validation provides common validation utilities for configuration
// parameters and operator arguments across the rxflow library.
//
// Every function returns nil or a *errors.ValidationError, so callers can
// match failures with errors.Is(err, errors.ErrInvalidConfiguration).
package validation
