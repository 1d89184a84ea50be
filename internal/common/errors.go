// Package common contains shared constants and sentinel errors used across
// the siniestros console components. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Submission errors.
	ErrIDExtractionFailed = errors.New("incident id extraction failed")

	// Validation errors (client-side, resolved before any network call).
	ErrValidation = errors.New("validation failed")
)
