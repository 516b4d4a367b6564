package model

import "errors"

var (
	// ErrNotFound indicates that no row matches the requested id.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates input that must not be written to storage.
	ErrValidation = errors.New("invalid input")
)
