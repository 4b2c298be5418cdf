package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Session-level errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Input errors.
	ErrEmptyInput = errors.New("empty input")
)
