package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session is saved locally
	ErrSessionNotFound = errors.New("session not found")
)
