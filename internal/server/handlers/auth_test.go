package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hearthabitz/internal/models"
	"github.com/iudanet/hearthabitz/internal/otp"
	"github.com/iudanet/hearthabitz/internal/server/auth"
	"github.com/iudanet/hearthabitz/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// mockAuthService is a mock implementation of AuthService for testing
type mockAuthService struct {
	registerFn func(ctx context.Context, username, password string) (*auth.RegisterResult, error)
	loginFn    func(ctx context.Context, username, password string) (*auth.LoginResult, error)
	enrollFn   func(ctx context.Context, username string) (*otp.Enrollment, error)
	verifyFn   func(ctx context.Context, username, token, code string) (*models.Session, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, password string) (*auth.RegisterResult, error) {
	return m.registerFn(ctx, username, password)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*auth.LoginResult, error) {
	return m.loginFn(ctx, username, password)
}

func (m *mockAuthService) Enroll(ctx context.Context, username string) (*otp.Enrollment, error) {
	return m.enrollFn(ctx, username)
}

func (m *mockAuthService) VerifyMfa(ctx context.Context, username, token, code string) (*models.Session, error) {
	return m.verifyFn(ctx, username, token, code)
}

func doJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	switch v := body.(type) {
	case string:
		raw = []byte(v)
	default:
		var err error
		raw, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/test", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		registerErr error
		wantFields  map[string]any
		name        string
		wantStatus  int
	}{
		{
			name:       "success",
			wantStatus: http.StatusOK,
			wantFields: map[string]any{
				"token":            nil,
				"errorCode":        nil,
				"message":          "Account created. Please set up MFA.",
				"requiresMfa":      false,
				"mfaSetupRequired": true,
				"mfaSessionToken":  "challenge-token",
				"otpAuthUri":       "otpauth://totp/Roohi:alice@example.com?issuer=Roohi&secret=JBSWY3DPEHPK3PXP",
				"manualEntryKey":   "JBSWY3DPEHPK3PXP",
			},
		},
		{
			name:        "invalid email",
			registerErr: fmt.Errorf("%w: must be an email", auth.ErrInvalidEmail),
			wantStatus:  http.StatusOK,
			wantFields: map[string]any{
				"token":            nil,
				"errorCode":        "INVALID_EMAIL",
				"message":          "Invalid email format",
				"mfaSetupRequired": false,
				"mfaSessionToken":  nil,
				"otpAuthUri":       nil,
				"manualEntryKey":   nil,
			},
		},
		{
			name:        "username exists",
			registerErr: auth.ErrUsernameExists,
			wantStatus:  http.StatusOK,
			wantFields: map[string]any{
				"errorCode":       "USERNAME_EXISTS",
				"message":         "Username already exists",
				"mfaSessionToken": nil,
			},
		},
		{
			name:        "storage failure",
			registerErr: errors.New("connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantFields: map[string]any{
				"errorCode": "SERVER_ERROR",
				"message":   "Server error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				registerFn: func(_ context.Context, username, password string) (*auth.RegisterResult, error) {
					assert.Equal(t, "alice@example.com", username)
					assert.Equal(t, "secret1", password)
					if tt.registerErr != nil {
						return nil, tt.registerErr
					}
					return &auth.RegisterResult{
						UserID:         "user-1",
						ChallengeToken: "challenge-token",
						Enrollment: &otp.Enrollment{
							Secret: "JBSWY3DPEHPK3PXP",
							URI:    "otpauth://totp/Roohi:alice@example.com?issuer=Roohi&secret=JBSWY3DPEHPK3PXP",
						},
					}, nil
				},
			}
			handler := NewAuthHandler(setupTestLogger(), svc)

			w := doJSON(t, handler.Register, api.RegisterRequest{Username: "alice@example.com", Password: "secret1"})
			assert.Equal(t, tt.wantStatus, w.Code)

			body := decodeBody(t, w)
			for k, v := range tt.wantFields {
				assert.Contains(t, body, k)
				assert.Equal(t, v, body[k], "field %s", k)
			}

			// Детали ошибки не попадают в ответ
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestAuthHandler_InvalidJSON(t *testing.T) {
	handler := NewAuthHandler(setupTestLogger(), &mockAuthService{})

	for name, h := range map[string]http.HandlerFunc{
		"register": handler.Register,
		"login":    handler.Login,
		"enroll":   handler.Enroll,
		"verify":   handler.VerifyMfa,
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, h, "invalid json")
			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, "BAD_REQUEST", body["errorCode"])
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockAuthService{
			loginFn: func(_ context.Context, username, password string) (*auth.LoginResult, error) {
				return &auth.LoginResult{ChallengeToken: "challenge-token", RequiresMfa: true}, nil
			},
		}
		handler := NewAuthHandler(setupTestLogger(), svc)

		w := doJSON(t, handler.Login, api.LoginRequest{Username: "alice@example.com", Password: "secret1"})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.AuthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "MFA verification required", resp.Message)
		assert.Nil(t, resp.ErrorCode)
		assert.Nil(t, resp.Token)
		assert.True(t, resp.RequiresMfa)
		require.NotNil(t, resp.MfaSessionToken)
		assert.Equal(t, "challenge-token", *resp.MfaSessionToken)
	})

	t.Run("unknown user and wrong password give identical bodies", func(t *testing.T) {
		svc := &mockAuthService{
			loginFn: func(context.Context, string, string) (*auth.LoginResult, error) {
				return nil, auth.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(setupTestLogger(), svc)

		w1 := doJSON(t, handler.Login, api.LoginRequest{Username: "ghost@example.com", Password: "secret1"})
		w2 := doJSON(t, handler.Login, api.LoginRequest{Username: "alice@example.com", Password: "wrong"})

		assert.Equal(t, http.StatusOK, w1.Code)
		assert.Equal(t, w1.Code, w2.Code)
		assert.Equal(t, w1.Body.String(), w2.Body.String())

		body := decodeBody(t, w1)
		assert.Equal(t, "INVALID_CREDENTIALS", body["errorCode"])
		assert.Equal(t, "Invalid username or password", body["message"])
	})

	t.Run("service failure", func(t *testing.T) {
		svc := &mockAuthService{
			loginFn: func(context.Context, string, string) (*auth.LoginResult, error) {
				return nil, errors.New("db down")
			},
		}
		handler := NewAuthHandler(setupTestLogger(), svc)

		w := doJSON(t, handler.Login, api.LoginRequest{Username: "alice@example.com", Password: "secret1"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "SERVER_ERROR", decodeBody(t, w)["errorCode"])
	})
}

func TestAuthHandler_Enroll(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		wantCode   any
		wantMsg    string
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK, wantCode: nil, wantMsg: "MFA secret generated"},
		{name: "missing username", err: auth.ErrUsernameMissing, wantStatus: http.StatusBadRequest, wantCode: "USERNAME_MISSING", wantMsg: "Username is required"},
		{name: "unknown user", err: auth.ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: "USER_NOT_FOUND", wantMsg: "User not found"},
		{name: "failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "SERVER_ERROR", wantMsg: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				enrollFn: func(_ context.Context, username string) (*otp.Enrollment, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &otp.Enrollment{Secret: "JBSWY3DPEHPK3PXP", URI: "otpauth://totp/Roohi:a@b.io?secret=JBSWY3DPEHPK3PXP"}, nil
				},
			}
			handler := NewAuthHandler(setupTestLogger(), svc)

			w := doJSON(t, handler.Enroll, api.EnrollRequest{Username: "a@b.io"})
			assert.Equal(t, tt.wantStatus, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, tt.wantCode, body["errorCode"])
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.err == nil {
				assert.Equal(t, "JBSWY3DPEHPK3PXP", body["manualEntryKey"])
				assert.Contains(t, body["otpauthUri"], "otpauth://totp/")
				assert.Contains(t, body["qrCodeDataUri"], "data:image/png;base64,")
			} else {
				assert.NotContains(t, body, "manualEntryKey")
				assert.NotContains(t, body, "qrCodeDataUri")
			}
		})
	}
}

func TestAuthHandler_VerifyMfa(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		wantCode   any
		wantToken  any
		wantMsg    string
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK, wantCode: nil, wantToken: "session-token", wantMsg: "Authentication successful"},
		{name: "missing parameters", err: auth.ErrMissingParameters, wantStatus: http.StatusBadRequest, wantCode: "BAD_REQUEST", wantMsg: "Missing parameters"},
		{name: "expired", err: auth.ErrExpiredMfaSession, wantStatus: http.StatusOK, wantCode: "EXPIRED_MFA_SESSION", wantMsg: "MFA session expired. Please log in again."},
		{name: "not configured", err: auth.ErrMfaNotConfigured, wantStatus: http.StatusOK, wantCode: "MFA_NOT_CONFIGURED", wantMsg: "MFA not configured"},
		{name: "invalid code", err: auth.ErrInvalidMfaCode, wantStatus: http.StatusOK, wantCode: "INVALID_MFA_CODE", wantMsg: "Invalid verification code"},
		{name: "failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "SERVER_ERROR", wantMsg: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				verifyFn: func(_ context.Context, username, token, code string) (*models.Session, error) {
					assert.Equal(t, "alice@example.com", username)
					assert.Equal(t, "challenge-token", token)
					assert.Equal(t, "123456", code)
					if tt.err != nil {
						return nil, tt.err
					}
					return &models.Session{Token: "session-token", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
				},
			}
			handler := NewAuthHandler(setupTestLogger(), svc)

			w := doJSON(t, handler.VerifyMfa, api.VerifyRequest{
				Username:        "alice@example.com",
				MfaSessionToken: "challenge-token",
				OtpCode:         "123456",
			})
			assert.Equal(t, tt.wantStatus, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, tt.wantCode, body["errorCode"])
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Contains(t, body, "token")
			assert.Equal(t, tt.wantToken, body["token"])
		})
	}
}

func TestAuthHandler_VerifyMfaOtpCodeForms(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   string
		wantStatus int
	}{
		{name: "string", body: `{"username":"alice@example.com","mfaSessionToken":"t","otpCode":"012345"}`, wantCode: "012345", wantStatus: http.StatusOK},
		{name: "number", body: `{"username":"alice@example.com","mfaSessionToken":"t","otpCode":123456}`, wantCode: "123456", wantStatus: http.StatusOK},
		{name: "number with leading zero lost", body: `{"username":"alice@example.com","mfaSessionToken":"t","otpCode":12345}`, wantCode: "012345", wantStatus: http.StatusOK},
		{name: "fractional number", body: `{"username":"alice@example.com","mfaSessionToken":"t","otpCode":12.5}`, wantStatus: http.StatusBadRequest},
		{name: "boolean", body: `{"username":"alice@example.com","mfaSessionToken":"t","otpCode":true}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCode string
			svc := &mockAuthService{
				verifyFn: func(_ context.Context, _, _, code string) (*models.Session, error) {
					gotCode = code
					return &models.Session{Token: "session-token", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
				},
			}
			handler := NewAuthHandler(setupTestLogger(), svc)

			w := doJSON(t, handler.VerifyMfa, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, gotCode)

			body := decodeBody(t, w)
			if tt.wantStatus == http.StatusOK {
				assert.Nil(t, body["errorCode"])
				assert.Equal(t, "session-token", body["token"])
			} else {
				assert.Equal(t, "BAD_REQUEST", body["errorCode"])
			}
		})
	}
}

func TestAuthHandler_Session(t *testing.T) {
	handler := NewAuthHandler(setupTestLogger(), &mockAuthService{})

	t.Run("no session in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Session(w, httptest.NewRequest(http.MethodGet, "/api/session", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_SESSION", decodeBody(t, w)["errorCode"])
	})

	t.Run("session in context", func(t *testing.T) {
		expiresAt := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req = req.WithContext(WithSession(req.Context(), &auth.SessionInfo{
			UserID:    "user-1",
			Username:  "alice@example.com",
			ExpiresAt: expiresAt,
		}))

		w := httptest.NewRecorder()
		handler.Session(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.SessionResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Nil(t, resp.ErrorCode)
		assert.Equal(t, "user-1", resp.UserID)
		assert.Equal(t, "alice@example.com", resp.Username)
		require.NotNil(t, resp.ExpiresAt)
		assert.True(t, expiresAt.Equal(*resp.ExpiresAt))
	})
}
