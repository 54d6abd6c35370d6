package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/hearthabitz/internal/crypto"
	"github.com/iudanet/hearthabitz/internal/models"
	"github.com/iudanet/hearthabitz/internal/otp"
	"github.com/iudanet/hearthabitz/internal/server/storage"
	"github.com/iudanet/hearthabitz/internal/validation"
)

// Store объединяет все хранилища, нужные сервису
type Store interface {
	storage.UserStorage
	storage.ChallengeStorage
	storage.SessionStorage
	storage.DataStorage
	storage.Transactor
}

// Config параметры сервиса аутентификации
type Config struct {
	Now          func() time.Time // источник времени, по умолчанию time.Now
	ChallengeTTL time.Duration
	SessionTTL   time.Duration
}

// RegisterResult ответ регистрации: MFA нужно настроить, сессии еще нет
type RegisterResult struct {
	Enrollment     *otp.Enrollment
	ExpiresAt      time.Time
	UserID         string
	ChallengeToken string
}

// LoginResult ответ успешной проверки пароля
type LoginResult struct {
	ExpiresAt      time.Time
	ChallengeToken string
	RequiresMfa    bool
}

// SessionInfo владелец действующей сессии
type SessionInfo struct {
	ExpiresAt time.Time
	UserID    string
	Username  string
}

// Service реализует конечный автомат аутентификации:
// Anonymous -> CredentialsChecked -> MfaChallengeIssued -> Authenticated
type Service struct {
	logger      *slog.Logger
	store       Store
	challenges  *Challenges
	sessions    *Sessions
	hasher      *crypto.PasswordHasher
	provisioner *otp.Provisioner
	verifier    *otp.Verifier
	now         func() time.Time
	dummyHash   string
}

// NewService создает сервис аутентификации
func NewService(
	logger *slog.Logger,
	store Store,
	hasher *crypto.PasswordHasher,
	provisioner *otp.Provisioner,
	verifier *otp.Verifier,
	cfg Config,
) (*Service, error) {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	// Хеш для сравнения, когда пользователь не найден: оба пути логина стоят одинаково
	dummyHash, err := hasher.HashPassword(uuid.New().String())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		logger:      logger,
		store:       store,
		challenges:  NewChallenges(store, cfg.ChallengeTTL, now),
		sessions:    NewSessions(store, cfg.SessionTTL, now),
		hasher:      hasher,
		provisioner: provisioner,
		verifier:    verifier,
		now:         now,
		dummyHash:   dummyHash,
	}, nil
}

// Register создает пользователя, выдает ему TOTP секрет и MFA challenge
func (s *Service) Register(ctx context.Context, username, password string) (*RegisterResult, error) {
	if err := validation.ValidateEmail(username); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	var result *RegisterResult
	err = s.store.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateUser(ctx, user); err != nil {
			if errors.Is(err, storage.ErrUserAlreadyExists) {
				return ErrUsernameExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		enrollment, err := s.provisioner.Generate(user.Username)
		if err != nil {
			return err
		}

		if err := s.store.SetMfaSecret(ctx, user.ID, enrollment.Secret); err != nil {
			return fmt.Errorf("failed to store mfa secret: %w", err)
		}

		challenge, err := s.challenges.Issue(ctx, user.ID)
		if err != nil {
			return err
		}

		result = &RegisterResult{
			UserID:         user.ID,
			ChallengeToken: challenge.Token,
			ExpiresAt:      challenge.ExpiresAt,
			Enrollment:     enrollment,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			s.logger.WarnContext(ctx, "registration rejected: username exists", slog.String("username", username))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered, mfa setup required",
		slog.String("username", username),
		slog.String("user_id", user.ID))

	return result, nil
}

// Login проверяет пароль и выдает MFA challenge
// Неизвестный пользователь и неверный пароль дают одинаковый ErrInvalidCredentials
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		_ = s.hasher.VerifyPassword(s.dummyHash, password)
		s.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.VerifyPassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, crypto.ErrPasswordMismatch) {
			return nil, fmt.Errorf("failed to verify password: %w", err)
		}
		s.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	challenge, err := s.challenges.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "password accepted, mfa required",
		slog.String("username", username),
		slog.String("user_id", user.ID))

	return &LoginResult{
		ChallengeToken: challenge.Token,
		ExpiresAt:      challenge.ExpiresAt,
		RequiresMfa:    true,
	}, nil
}

// Enroll возвращает TOTP секрет пользователя, создавая его при первом вызове
// Повторные вызовы возвращают тот же секрет
func (s *Service) Enroll(ctx context.Context, username string) (*otp.Enrollment, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameMissing
	}

	var enrollment *otp.Enrollment
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.store.GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		if user.HasMfa() {
			enrollment, err = s.provisioner.FromSecret(user.Username, user.MfaSecret)
			return err
		}

		generated, err := s.provisioner.Generate(user.Username)
		if err != nil {
			return err
		}

		if err := s.store.SetMfaSecret(ctx, user.ID, generated.Secret); err != nil {
			if !errors.Is(err, storage.ErrMfaSecretAlreadySet) {
				return fmt.Errorf("failed to store mfa secret: %w", err)
			}

			// Параллельный enroll успел первым, отдаем его секрет
			stored, err := s.store.GetUserByID(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("failed to reload user: %w", err)
			}
			enrollment, err = s.provisioner.FromSecret(stored.Username, stored.MfaSecret)
			return err
		}

		enrollment = generated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "mfa secret provisioned", slog.String("username", username))

	return enrollment, nil
}

// VerifyMfa погашает challenge и при верном коде выдает сессию.
// Challenge допускает одну попытку: он удаляется при любом исходе проверки
func (s *Service) VerifyMfa(ctx context.Context, username, challengeToken, code string) (*models.Session, error) {
	if username == "" || challengeToken == "" || code == "" {
		return nil, ErrMissingParameters
	}

	var (
		session *models.Session
		outcome error
	)

	// Доменные исходы фиксируют транзакцию (удаление challenge должно сохраниться),
	// системные ошибки ее откатывают
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		challenge, err := s.challenges.Consume(ctx, username, challengeToken)
		if err != nil {
			if errors.Is(err, ErrChallengeNotFound) || errors.Is(err, ErrChallengeExpired) {
				outcome = ErrExpiredMfaSession
				return nil
			}
			return err
		}

		user, err := s.store.GetUserByID(ctx, challenge.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		if err := s.challenges.Delete(ctx, challenge.ID); err != nil {
			return err
		}

		if !user.HasMfa() {
			outcome = ErrMfaNotConfigured
			return nil
		}

		if !s.verifier.Verify(user.MfaSecret, code, s.now()) {
			outcome = ErrInvalidMfaCode
			return nil
		}

		session, err = s.sessions.Issue(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if outcome != nil {
		s.logger.WarnContext(ctx, "mfa verification failed",
			slog.String("username", username),
			slog.Any("reason", outcome))
		return nil, outcome
	}

	s.logger.InfoContext(ctx, "mfa verified, session issued",
		slog.String("username", username),
		slog.String("user_id", session.UserID))

	return session, nil
}

// ValidateSession возвращает владельца действующей сессии
func (s *Service) ValidateSession(ctx context.Context, token string) (*SessionInfo, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &SessionInfo{
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// SaveUserData сохраняет произвольный JSON payload пользователя
func (s *Service) SaveUserData(ctx context.Context, username string, loginTimestamp time.Time, payload json.RawMessage) error {
	if _, err := s.store.GetUserByUsername(ctx, username); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	data := &models.UserData{
		ID:             uuid.New().String(),
		Username:       username,
		LoginTimestamp: loginTimestamp.UTC(),
		Payload:        payload,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.store.SaveUserData(ctx, data); err != nil {
		return fmt.Errorf("failed to save user data: %w", err)
	}

	s.logger.InfoContext(ctx, "user data saved", slog.String("username", username))

	return nil
}

// PurgeExpired удаляет истекшие challenge и сессии
func (s *Service) PurgeExpired(ctx context.Context) (challenges, sessions int, err error) {
	challenges, err = s.challenges.PurgeExpired(ctx)
	if err != nil {
		return 0, 0, err
	}

	sessions, err = s.sessions.PurgeExpired(ctx)
	if err != nil {
		return challenges, 0, err
	}

	return challenges, sessions, nil
}
