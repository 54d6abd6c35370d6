package sqlstore

import (
	"context"
	"fmt"

	"github.com/iudanet/hearthabitz/internal/models"
)

// SaveUserData inserts a new payload record
func (s *Storage) SaveUserData(ctx context.Context, data *models.UserData) error {
	query := `
		INSERT INTO user_data (id, username, login_timestamp, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.conn(ctx).ExecContext(ctx, s.dialect.rebind(query),
		data.ID,
		data.Username,
		data.LoginTimestamp.UTC(),
		string(data.Payload),
		data.CreatedAt.UTC(),
	)

	if err != nil {
		return fmt.Errorf("failed to save user data: %w", err)
	}

	return nil
}

// CountUserData returns number of payload records stored for username
func (s *Storage) CountUserData(ctx context.Context, username string) (int, error) {
	query := `SELECT COUNT(*) FROM user_data WHERE username = ?`

	var n int
	if err := s.conn(ctx).QueryRowContext(ctx, s.dialect.rebind(query), username).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count user data: %w", err)
	}

	return n, nil
}
