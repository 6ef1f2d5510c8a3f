// Package errors defines the error values shared by rxflow packages.
//
// Sentinel errors are compared with errors.Is. Structured errors
// (ValidationError, OperatorError) are extracted with errors.As.
package errors
