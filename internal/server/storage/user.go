package storage

import (
	"context"

	"github.com/iudanet/hearthabitz/internal/models"
)

// UserStorage defines interface for user credential persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username already exists.
	// Uniqueness is enforced by the database constraint, not by a prior read.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username (case-sensitive)
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// SetMfaSecret stores the base32 TOTP secret for a user
	// Returns ErrMfaSecretAlreadySet if a secret is already stored,
	// ErrUserNotFound if user doesn't exist
	SetMfaSecret(ctx context.Context, userID, secret string) error
}
