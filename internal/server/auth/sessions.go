package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/hearthabitz/internal/crypto"
	"github.com/iudanet/hearthabitz/internal/models"
	"github.com/iudanet/hearthabitz/internal/server/storage"
)

// DefaultSessionTTL время жизни сессии
const DefaultSessionTTL = 30 * 24 * time.Hour

// Sessions выдает и проверяет непрозрачные токены сессий
type Sessions struct {
	store storage.SessionStorage
	now   func() time.Time
	ttl   time.Duration
}

// NewSessions создает SessionStore поверх хранилища
func NewSessions(store storage.SessionStorage, ttl time.Duration, now func() time.Time) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Sessions{store: store, ttl: ttl, now: now}
}

// Issue создает сессию для пользователя
func (s *Sessions) Issue(ctx context.Context, userID string) (*models.Session, error) {
	token, err := crypto.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.now().UTC()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

// Validate возвращает сессию, если токен существует и не истек
func (s *Sessions) Validate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	session, err := s.store.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(s.now()) {
		return nil, ErrSessionInvalid
	}

	return session, nil
}

// PurgeExpired удаляет все истекшие сессии
func (s *Sessions) PurgeExpired(ctx context.Context) (int, error) {
	n, err := s.store.DeleteExpiredSessions(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return n, nil
}
