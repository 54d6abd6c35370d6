package storage

import (
	"context"
	"time"
)

// SessionStorage хранит сессию, выданную сервером после проверки OTP
// Токен непрозрачный: клиент не умеет его проверять и просто предъявляет серверу
type SessionStorage interface {
	// SaveSession сохраняет (перезаписывает) текущую сессию
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession возвращает сохраненную сессию
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession удаляет сессию (logout)
	// Returns ErrSessionNotFound if no session exists
	DeleteSession(ctx context.Context) error

	// IsAuthenticated checks if a session exists and is not expired
	IsAuthenticated(ctx context.Context) (bool, error)
}

// SessionData сессия в локальном хранилище
type SessionData struct {
	Username  string `json:"username"`
	UserID    string `json:"user_id"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds, 0 если сервер не сообщил срок
}

// Expired сообщает, истекла ли сессия к моменту now
func (s *SessionData) Expired(now time.Time) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return !now.Before(time.Unix(s.ExpiresAt, 0))
}
