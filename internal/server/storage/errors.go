package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrMfaSecretAlreadySet indicates that user already has an MFA secret
	ErrMfaSecretAlreadySet = errors.New("mfa secret already set")

	// ErrChallengeNotFound indicates that MFA challenge was not found
	ErrChallengeNotFound = errors.New("mfa challenge not found")

	// ErrSessionNotFound indicates that session was not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrDuplicateToken indicates that a token collided with an existing one
	ErrDuplicateToken = errors.New("duplicate token")
)
