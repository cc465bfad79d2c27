// Package apperrors defines the sentinel errors shared by services and
// controllers. Services wrap them with context via fmt.Errorf("%w");
// controllers map them to HTTP status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrValidation is malformed or missing input (400).
	ErrValidation = errors.New("validation failed")
	// ErrAuth is a credential mismatch (401). The same error is returned
	// for an unknown email and a wrong password so callers cannot
	// enumerate accounts.
	ErrAuth = errors.New("invalid email or password")
	// ErrForbidden is a role mismatch (403).
	ErrForbidden = errors.New("access denied")
	// ErrNotFound means no record matched (404).
	ErrNotFound = errors.New("not found")
	// ErrConflict is a duplicate unique field, e.g. email (409).
	ErrConflict = errors.New("already exists")
	// ErrExpired is a token past its validity window.
	ErrExpired = errors.New("expired")
)
