package auth

import "errors"

// Исходы аутентификации. Обработчики сопоставляют их с errorCode ответа
var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameMissing    = errors.New("username is required")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingParameters  = errors.New("missing parameters")
	ErrExpiredMfaSession  = errors.New("mfa session expired")
	ErrMfaNotConfigured   = errors.New("mfa not configured")
	ErrInvalidMfaCode     = errors.New("invalid verification code")
	ErrSessionInvalid     = errors.New("session is invalid or expired")
)

// Внутренние исходы ChallengeStore, наружу превращаются в ErrExpiredMfaSession
var (
	ErrChallengeNotFound = errors.New("mfa challenge not found")
	ErrChallengeExpired  = errors.New("mfa challenge expired")
)
