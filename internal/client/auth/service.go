package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	clientapi "github.com/iudanet/hearthabitz/internal/client/api"
	"github.com/iudanet/hearthabitz/internal/client/storage"
	"github.com/iudanet/hearthabitz/internal/validation"
	"github.com/iudanet/hearthabitz/pkg/api"
)

var (
	// ErrNotAuthenticated локальной сессии нет
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionRejected сервер отклонил сохраненную сессию, она удалена локально
	ErrSessionRejected = errors.New("session is invalid or expired")
	// ErrNoChallenge сервер не выдал MFA challenge
	ErrNoChallenge = errors.New("server did not issue an mfa challenge")
)

// Challenge ожидающая проверка второго фактора
type Challenge struct {
	Username       string
	Token          string // mfaSessionToken
	OtpAuthURI     string // заполнен только после регистрации
	ManualEntryKey string // заполнен только после регистрации
	SetupRequired  bool   // пользователь должен добавить секрет в приложение
}

// Enrollment TOTP секрет для приложения-аутентификатора
type Enrollment struct {
	OtpAuthURI     string
	ManualEntryKey string
}

// Service предоставляет функции авторизации клиента
type Service struct {
	apiClient APIClient
	store     storage.SessionStorage
}

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, store storage.SessionStorage) *Service {
	return &Service{
		apiClient: apiClient,
		store:     store,
	}
}

// Register регистрирует пользователя, возвращает challenge и TOTP секрет
func (s *Service) Register(ctx context.Context, username, password string) (*Challenge, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateEmail(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, api.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return newChallenge(username, resp)
}

// Login проверяет пароль и возвращает challenge для ввода OTP кода
func (s *Service) Login(ctx context.Context, username, password string) (*Challenge, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	resp, err := s.apiClient.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return newChallenge(username, resp)
}

// Enroll запрашивает TOTP секрет пользователя. Повторный вызов возвращает тот же секрет
func (s *Service) Enroll(ctx context.Context, username string) (*Enrollment, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}

	resp, err := s.apiClient.Enroll(ctx, api.EnrollRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("enrollment failed: %w", err)
	}

	return &Enrollment{
		OtpAuthURI:     deref(resp.OtpauthURI),
		ManualEntryKey: deref(resp.ManualEntryKey),
	}, nil
}

// Verify обменивает challenge и OTP код на сессию и сохраняет ее локально
// Challenge одноразовый: после любой неудачи нужен новый login
func (s *Service) Verify(ctx context.Context, challenge *Challenge, code string) (*storage.SessionData, error) {
	code = strings.TrimSpace(code)
	if challenge == nil || challenge.Token == "" {
		return nil, ErrNoChallenge
	}
	if code == "" {
		return nil, errors.New("otp code is required")
	}

	resp, err := s.apiClient.VerifyMfa(ctx, api.VerifyRequest{
		Username:        challenge.Username,
		MfaSessionToken: challenge.Token,
		OtpCode:         api.OTPCode(code),
	})
	if err != nil {
		return nil, fmt.Errorf("mfa verification failed: %w", err)
	}

	session := &storage.SessionData{
		Username: challenge.Username,
		Token:    *resp.Token,
	}

	// Срок и ID пользователя узнаем у сервера. Сессия уже выдана, поэтому ошибка здесь не фатальна
	if info, err := s.apiClient.Session(ctx, session.Token); err != nil {
		slog.WarnContext(ctx, "failed to fetch session details", slog.Any("error", err))
	} else {
		session.UserID = info.UserID
		if info.ExpiresAt != nil {
			session.ExpiresAt = info.ExpiresAt.Unix()
		}
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// CurrentSession возвращает локальную сессию без обращения к серверу
func (s *Service) CurrentSession(ctx context.Context) (*storage.SessionData, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// CheckSession проверяет локальную сессию на сервере
// Отклоненная сервером сессия удаляется локально
func (s *Service) CheckSession(ctx context.Context) (*api.SessionResponse, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Session(ctx, session.Token)
	if err != nil {
		if clientapi.HasCode(err, api.CodeInvalidSession) {
			if delErr := s.store.DeleteSession(ctx); delErr != nil && !errors.Is(delErr, storage.ErrSessionNotFound) {
				return nil, fmt.Errorf("failed to delete rejected session: %w", delErr)
			}
			return nil, ErrSessionRejected
		}
		return nil, fmt.Errorf("session check failed: %w", err)
	}

	return resp, nil
}

// Logout удаляет локальную сессию
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

func newChallenge(username string, resp *api.AuthResponse) (*Challenge, error) {
	token := deref(resp.MfaSessionToken)
	if !resp.RequiresMfa || token == "" {
		return nil, ErrNoChallenge
	}

	return &Challenge{
		Username:       username,
		Token:          token,
		OtpAuthURI:     deref(resp.OtpAuthURI),
		ManualEntryKey: deref(resp.ManualEntryKey),
		SetupRequired:  resp.MfaSetupRequired,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
