package handlers

import (
	"context"

	"github.com/iudanet/hearthabitz/internal/server/auth"
)

type contextKey string

// SessionKey ключ контекста для владельца сессии
const SessionKey contextKey = "session"

// WithSession сохраняет владельца сессии в контексте
func WithSession(ctx context.Context, info *auth.SessionInfo) context.Context {
	return context.WithValue(ctx, SessionKey, info)
}

// GetSession извлекает владельца сессии из контекста
func GetSession(ctx context.Context) (*auth.SessionInfo, bool) {
	info, ok := ctx.Value(SessionKey).(*auth.SessionInfo)
	return info, ok && info != nil
}
