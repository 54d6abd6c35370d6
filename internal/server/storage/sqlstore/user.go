package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/hearthabitz/internal/models"
	"github.com/iudanet/hearthabitz/internal/server/storage"
)

const userColumns = `id, username, password_hash, mfa_secret, created_at`

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, mfa_secret, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.conn(ctx).ExecContext(ctx, s.dialect.rebind(query),
		user.ID,
		user.Username,
		user.PasswordHash,
		nullString(user.MfaSecret),
		user.CreatedAt.UTC(),
	)

	if err != nil {
		// Проверяем на duplicate username
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	return s.scanUser(s.conn(ctx).QueryRowContext(ctx, s.dialect.rebind(query), username))
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	return s.scanUser(s.conn(ctx).QueryRowContext(ctx, s.dialect.rebind(query), userID))
}

// SetMfaSecret stores the TOTP secret if the user has none yet
func (s *Storage) SetMfaSecret(ctx context.Context, userID, secret string) error {
	query := `UPDATE users SET mfa_secret = ? WHERE id = ? AND mfa_secret IS NULL`

	result, err := s.conn(ctx).ExecContext(ctx, s.dialect.rebind(query), secret, userID)
	if err != nil {
		return fmt.Errorf("failed to set mfa secret: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows > 0 {
		return nil
	}

	// Ни одна строка не обновлена: пользователя нет или секрет уже задан
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}

	return storage.ErrMfaSecretAlreadySet
}

func (s *Storage) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var secret sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&secret,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.MfaSecret = secret.String
	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
