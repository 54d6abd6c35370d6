package storage

import (
	"context"
	"time"

	"github.com/iudanet/hearthabitz/internal/models"
)

// SessionStorage defines interface for session persistence
type SessionStorage interface {
	// CreateSession stores a new session
	// Returns ErrDuplicateToken if the token is already taken
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves session by token value
	// Returns ErrSessionNotFound if session doesn't exist
	GetSession(ctx context.Context, token string) (*models.Session, error)

	// DeleteExpiredSessions removes all sessions expired at the given instant
	// Returns number of deleted sessions
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
