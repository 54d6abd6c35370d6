package storage

import (
	"context"
	"time"

	"github.com/iudanet/hearthabitz/internal/models"
)

// ChallengeStorage defines interface for MFA challenge persistence
type ChallengeStorage interface {
	// CreateChallenge stores a new MFA challenge
	// Returns ErrDuplicateToken if the token is already taken
	CreateChallenge(ctx context.Context, challenge *models.MfaChallenge) error

	// GetChallengeForUpdate retrieves the challenge by owner username and token
	// and locks the row until the surrounding transaction ends.
	// Returns ErrChallengeNotFound if there is no such pair
	GetChallengeForUpdate(ctx context.Context, username, token string) (*models.MfaChallenge, error)

	// DeleteChallenge deletes challenge by ID
	// Deleting a missing challenge is not an error
	DeleteChallenge(ctx context.Context, id string) error

	// DeleteExpiredChallenges removes all challenges expired at the given instant
	// Returns number of deleted challenges
	DeleteExpiredChallenges(ctx context.Context, now time.Time) (int, error)
}
