package storage

import "errors"

// Common hub storage errors
var (
	// ErrRecordNotFound indicates that hub record was not found
	ErrRecordNotFound = errors.New("hub record not found")
)
