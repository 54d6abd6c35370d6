package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/hearthabitz/internal/server/auth"
	"github.com/iudanet/hearthabitz/internal/server/handlers"
	"github.com/iudanet/hearthabitz/pkg/api"
)

const msgInvalidSession = "Invalid or expired session"

// SessionValidator проверяет токен сессии
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*auth.SessionInfo, error)
}

// SessionMiddleware создает middleware для проверки токена сессии
// Ожидает заголовок "Authorization: Bearer <token>"
func SessionMiddleware(logger *slog.Logger, validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.WarnContext(ctx, "missing or malformed Authorization header")
				writeEnvelope(logger, w, msgInvalidSession, api.CodeInvalidSession, http.StatusUnauthorized)
				return
			}

			info, err := validator.ValidateSession(ctx, token)
			if err != nil {
				if errors.Is(err, auth.ErrSessionInvalid) {
					logger.WarnContext(ctx, "invalid session token")
					writeEnvelope(logger, w, msgInvalidSession, api.CodeInvalidSession, http.StatusUnauthorized)
					return
				}
				logger.ErrorContext(ctx, "failed to validate session", slog.Any("error", err))
				writeEnvelope(logger, w, "Internal server error", api.CodeServerError, http.StatusInternalServerError)
				return
			}

			logger.DebugContext(ctx, "session authenticated", slog.String("user_id", info.UserID))

			next.ServeHTTP(w, r.WithContext(handlers.WithSession(ctx, info)))
		})
	}
}

// bearerToken извлекает токен из значения "Bearer <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeEnvelope(logger *slog.Logger, w http.ResponseWriter, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := api.MessageResponse{Message: message, ErrorCode: api.String(code)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}
