package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/hearthabitz/internal/models"
	"github.com/iudanet/hearthabitz/internal/otp"
	"github.com/iudanet/hearthabitz/internal/server/auth"
	"github.com/iudanet/hearthabitz/pkg/api"
)

// AuthService операции аутентификации, нужные обработчикам
type AuthService interface {
	Register(ctx context.Context, username, password string) (*auth.RegisterResult, error)
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	Enroll(ctx context.Context, username string) (*otp.Enrollment, error)
	VerifyMfa(ctx context.Context, username, challengeToken, code string) (*models.Session, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger  *slog.Logger
	service AuthService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, service AuthService) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		service: service,
	}
}

// Register обрабатывает POST /api/register
// Регистрация нового пользователя с обязательной настройкой MFA
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendMessage(h.logger, w, msgInvalidBody, api.CodeBadRequest, http.StatusBadRequest)
		return
	}

	res, err := h.service.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail):
			h.sendAuth(w, api.AuthResponse{Message: "Invalid email format", ErrorCode: api.String(api.CodeInvalidEmail)})
		case errors.Is(err, auth.ErrUsernameExists):
			h.sendAuth(w, api.AuthResponse{Message: "Username already exists", ErrorCode: api.String(api.CodeUsernameExists)})
		default:
			h.logger.ErrorContext(ctx, "failed to register user", slog.Any("error", err))
			sendMessage(h.logger, w, msgServerError, api.CodeServerError, http.StatusInternalServerError)
		}
		return
	}

	h.sendAuth(w, api.AuthResponse{
		Message:          "Account created. Please set up MFA.",
		MfaSetupRequired: true,
		MfaSessionToken:  api.String(res.ChallengeToken),
		OtpAuthURI:       api.String(res.Enrollment.URI),
		ManualEntryKey:   api.String(res.Enrollment.Secret),
	})
}

// Login обрабатывает POST /api/login
// Проверка пароля, после которой требуется OTP код
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendMessage(h.logger, w, msgInvalidBody, api.CodeBadRequest, http.StatusBadRequest)
		return
	}

	res, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.sendAuth(w, api.AuthResponse{Message: "Invalid username or password", ErrorCode: api.String(api.CodeInvalidCredentials)})
			return
		}
		h.logger.ErrorContext(ctx, "failed to login user", slog.Any("error", err))
		sendMessage(h.logger, w, msgServerError, api.CodeServerError, http.StatusInternalServerError)
		return
	}

	h.sendAuth(w, api.AuthResponse{
		Message:         "MFA verification required",
		RequiresMfa:     res.RequiresMfa,
		MfaSessionToken: api.String(res.ChallengeToken),
	})
}

// Enroll обрабатывает POST /api/mfa/enroll
// Выдает TOTP секрет, создавая его при первом обращении
func (h *AuthHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.EnrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode enroll request", slog.Any("error", err))
		sendMessage(h.logger, w, msgInvalidBody, api.CodeBadRequest, http.StatusBadRequest)
		return
	}

	enrollment, err := h.service.Enroll(ctx, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameMissing):
			sendMessage(h.logger, w, "Username is required", api.CodeUsernameMissing, http.StatusBadRequest)
		case errors.Is(err, auth.ErrUserNotFound):
			sendMessage(h.logger, w, "User not found", api.CodeUserNotFound, http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "failed to enroll mfa", slog.Any("error", err))
			sendMessage(h.logger, w, msgInternalError, api.CodeServerError, http.StatusInternalServerError)
		}
		return
	}

	resp := api.EnrollResponse{
		Message:        "MFA secret generated",
		ManualEntryKey: api.String(enrollment.Secret),
		OtpauthURI:     api.String(enrollment.URI),
	}

	// Без QR код все равно можно ввести вручную
	if dataURI, err := otp.QRCodeDataURI(enrollment.URI, otp.DefaultQRSize); err != nil {
		h.logger.WarnContext(ctx, "failed to render qr code", slog.Any("error", err))
	} else {
		resp.QRCodeDataURI = api.String(dataURI)
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// VerifyMfa обрабатывает POST /api/mfa/verify
// Проверяет OTP код и выдает токен сессии
func (h *AuthHandler) VerifyMfa(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode verify request", slog.Any("error", err))
		sendJSON(h.logger, w, api.VerifyResponse{Message: msgInvalidBody, ErrorCode: api.String(api.CodeBadRequest)}, http.StatusBadRequest)
		return
	}

	session, err := h.service.VerifyMfa(ctx, req.Username, req.MfaSessionToken, string(req.OtpCode))
	if err != nil {
		resp := api.VerifyResponse{}
		status := http.StatusOK

		switch {
		case errors.Is(err, auth.ErrMissingParameters):
			resp.Message, resp.ErrorCode = "Missing parameters", api.String(api.CodeBadRequest)
			status = http.StatusBadRequest
		case errors.Is(err, auth.ErrExpiredMfaSession):
			resp.Message, resp.ErrorCode = "MFA session expired. Please log in again.", api.String(api.CodeExpiredMfaSession)
		case errors.Is(err, auth.ErrMfaNotConfigured):
			resp.Message, resp.ErrorCode = "MFA not configured", api.String(api.CodeMfaNotConfigured)
		case errors.Is(err, auth.ErrInvalidMfaCode):
			resp.Message, resp.ErrorCode = "Invalid verification code", api.String(api.CodeInvalidMfaCode)
		default:
			h.logger.ErrorContext(ctx, "failed to verify mfa", slog.Any("error", err))
			resp.Message, resp.ErrorCode = msgInternalError, api.String(api.CodeServerError)
			status = http.StatusInternalServerError
		}

		sendJSON(h.logger, w, resp, status)
		return
	}

	sendJSON(h.logger, w, api.VerifyResponse{
		Message: "Authentication successful",
		Token:   api.String(session.Token),
	}, http.StatusOK)
}

// Session обрабатывает GET /api/session
// Владельца сессии кладет в контекст SessionMiddleware
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	info, ok := GetSession(r.Context())
	if !ok {
		sendMessage(h.logger, w, "Invalid or expired session", api.CodeInvalidSession, http.StatusUnauthorized)
		return
	}

	expiresAt := info.ExpiresAt
	sendJSON(h.logger, w, api.SessionResponse{
		Message:   "Session is valid",
		UserID:    info.UserID,
		Username:  info.Username,
		ExpiresAt: &expiresAt,
	}, http.StatusOK)
}

func (h *AuthHandler) sendAuth(w http.ResponseWriter, resp api.AuthResponse) {
	sendJSON(h.logger, w, resp, http.StatusOK)
}
