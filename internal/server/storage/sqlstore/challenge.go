package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/hearthabitz/internal/models"
	"github.com/iudanet/hearthabitz/internal/server/storage"
)

// CreateChallenge stores a new MFA challenge
func (s *Storage) CreateChallenge(ctx context.Context, challenge *models.MfaChallenge) error {
	query := `
		INSERT INTO mfa_challenges (id, user_id, token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.conn(ctx).ExecContext(ctx, s.dialect.rebind(query),
		challenge.ID,
		challenge.UserID,
		challenge.Token,
		challenge.ExpiresAt.UTC(),
		challenge.CreatedAt.UTC(),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateToken
		}
		return fmt.Errorf("failed to save mfa challenge: %w", err)
	}

	return nil
}

// GetChallengeForUpdate retrieves challenge by owner username and token value
// Вызывать внутри WithinTx: в Postgres строка блокируется до конца транзакции
func (s *Storage) GetChallengeForUpdate(ctx context.Context, username, token string) (*models.MfaChallenge, error) {
	query := `
		SELECT c.id, c.user_id, c.token, c.expires_at, c.created_at
		FROM mfa_challenges c
		JOIN users u ON u.id = c.user_id
		WHERE u.username = ? AND c.token = ?
	` + s.dialect.lockClause("c")

	challenge := &models.MfaChallenge{}

	err := s.conn(ctx).QueryRowContext(ctx, s.dialect.rebind(query), username, token).Scan(
		&challenge.ID,
		&challenge.UserID,
		&challenge.Token,
		&challenge.ExpiresAt,
		&challenge.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get mfa challenge: %w", err)
	}

	challenge.ExpiresAt = challenge.ExpiresAt.UTC()
	challenge.CreatedAt = challenge.CreatedAt.UTC()

	return challenge, nil
}

// DeleteChallenge deletes challenge by ID
func (s *Storage) DeleteChallenge(ctx context.Context, id string) error {
	query := `DELETE FROM mfa_challenges WHERE id = ?`

	if _, err := s.conn(ctx).ExecContext(ctx, s.dialect.rebind(query), id); err != nil {
		return fmt.Errorf("failed to delete mfa challenge: %w", err)
	}

	return nil
}

// DeleteExpiredChallenges removes all expired challenges
func (s *Storage) DeleteExpiredChallenges(ctx context.Context, now time.Time) (int, error) {
	query := `DELETE FROM mfa_challenges WHERE expires_at <= ?`

	return s.deleteExpired(ctx, query, now, "mfa challenges")
}

func (s *Storage) deleteExpired(ctx context.Context, query string, now time.Time, what string) (int, error) {
	result, err := s.conn(ctx).ExecContext(ctx, s.dialect.rebind(query), now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired %s: %w", what, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
