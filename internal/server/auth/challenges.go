package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/hearthabitz/internal/crypto"
	"github.com/iudanet/hearthabitz/internal/models"
	"github.com/iudanet/hearthabitz/internal/server/storage"
)

// DefaultChallengeTTL время жизни MFA challenge
const DefaultChallengeTTL = 10 * time.Minute

// Challenges выдает и погашает одноразовые MFA challenge
type Challenges struct {
	store storage.ChallengeStorage
	now   func() time.Time
	ttl   time.Duration
}

// NewChallenges создает ChallengeStore поверх хранилища
func NewChallenges(store storage.ChallengeStorage, ttl time.Duration, now func() time.Time) *Challenges {
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Challenges{store: store, ttl: ttl, now: now}
}

// Issue создает challenge для пользователя со сроком now + ttl
func (c *Challenges) Issue(ctx context.Context, userID string) (*models.MfaChallenge, error) {
	token, err := crypto.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenge token: %w", err)
	}

	now := c.now().UTC()
	challenge := &models.MfaChallenge{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(c.ttl),
		CreatedAt: now,
	}

	if err := c.store.CreateChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store mfa challenge: %w", err)
	}

	return challenge, nil
}

// Consume находит challenge по паре (username, token) и блокирует его.
// Должен вызываться внутри транзакции. Истекший challenge удаляется.
// Живой challenge возвращается без удаления, удаляет его вызывающий
func (c *Challenges) Consume(ctx context.Context, username, token string) (*models.MfaChallenge, error) {
	challenge, err := c.store.GetChallengeForUpdate(ctx, username, token)
	if err != nil {
		if errors.Is(err, storage.ErrChallengeNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get mfa challenge: %w", err)
	}

	if challenge.Expired(c.now()) {
		if err := c.store.DeleteChallenge(ctx, challenge.ID); err != nil {
			return nil, fmt.Errorf("failed to delete expired mfa challenge: %w", err)
		}
		return nil, ErrChallengeExpired
	}

	return challenge, nil
}

// Delete удаляет challenge. Повторное удаление не ошибка
func (c *Challenges) Delete(ctx context.Context, id string) error {
	if err := c.store.DeleteChallenge(ctx, id); err != nil {
		return fmt.Errorf("failed to delete mfa challenge: %w", err)
	}
	return nil
}

// PurgeExpired удаляет все истекшие challenge
func (c *Challenges) PurgeExpired(ctx context.Context) (int, error) {
	n, err := c.store.DeleteExpiredChallenges(ctx, c.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge mfa challenges: %w", err)
	}
	return n, nil
}
