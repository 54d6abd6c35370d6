package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hearthabitz/pkg/api"
)

// newTestServer поднимает httptest сервер, проверяющий метод и путь запроса
func newTestServer(t *testing.T, method, path string, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, method, r.Method)
		assert.Equal(t, path, r.URL.Path)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return NewClient(server.URL)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Register(t *testing.T) {
	client := newTestServer(t, http.MethodPost, "/api/register", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Username)
		assert.Equal(t, "hunter22", req.Password)

		writeJSON(w, http.StatusOK, api.AuthResponse{
			Message:          "Registration successful",
			RequiresMfa:      true,
			MfaSetupRequired: true,
			MfaSessionToken:  api.String("challenge-token"),
			OtpAuthURI:       api.String("otpauth://totp/Roohi:alice@example.com?secret=ABC"),
			ManualEntryKey:   api.String("ABC"),
		})
	})

	resp, err := client.Register(context.Background(), api.RegisterRequest{
		Username: "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.True(t, resp.MfaSetupRequired)
	require.NotNil(t, resp.MfaSessionToken)
	assert.Equal(t, "challenge-token", *resp.MfaSessionToken)
	require.NotNil(t, resp.ManualEntryKey)
	assert.Equal(t, "ABC", *resp.ManualEntryKey)
}

// Доменные отказы приходят со статусом 200 и errorCode
func TestClient_ErrorCodes(t *testing.T) {
	tests := []struct {
		body       any
		name       string
		wantCode   string
		wantMsg    string
		statusCode int
	}{
		{
			name:       "username exists with status 200",
			statusCode: http.StatusOK,
			body:       api.AuthResponse{Message: "Username already exists", ErrorCode: api.String(api.CodeUsernameExists)},
			wantCode:   api.CodeUsernameExists,
			wantMsg:    "Username already exists",
		},
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			body:       api.MessageResponse{Message: "Invalid request body", ErrorCode: api.String(api.CodeBadRequest)},
			wantCode:   api.CodeBadRequest,
			wantMsg:    "Invalid request body",
		},
		{
			name:       "plain text 500",
			statusCode: http.StatusInternalServerError,
			body:       "Internal Server Error",
			wantCode:   "",
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, http.MethodPost, "/api/login", func(w http.ResponseWriter, r *http.Request) {
				if s, ok := tt.body.(string); ok {
					w.WriteHeader(tt.statusCode)
					_, _ = w.Write([]byte(s))
					return
				}
				writeJSON(w, tt.statusCode, tt.body)
			})

			resp, err := client.Login(context.Background(), api.LoginRequest{Username: "a@b.co", Password: "x"})
			require.Error(t, err)
			assert.Nil(t, resp)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Contains(t, apiErr.Message, tt.wantMsg)
			if tt.wantCode != "" {
				assert.True(t, HasCode(err, tt.wantCode))
			}
		})
	}
}

func TestClient_Enroll(t *testing.T) {
	client := newTestServer(t, http.MethodPost, "/api/mfa/enroll", func(w http.ResponseWriter, r *http.Request) {
		var req api.EnrollRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Username)

		writeJSON(w, http.StatusOK, api.EnrollResponse{
			Message:        "MFA enrollment created",
			ManualEntryKey: api.String("SECRET"),
			OtpauthURI:     api.String("otpauth://totp/x"),
		})
	})

	resp, err := client.Enroll(context.Background(), api.EnrollRequest{Username: "alice@example.com"})
	require.NoError(t, err)
	require.NotNil(t, resp.ManualEntryKey)
	assert.Equal(t, "SECRET", *resp.ManualEntryKey)
}

func TestClient_VerifyMfa(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestServer(t, http.MethodPost, "/api/mfa/verify", func(w http.ResponseWriter, r *http.Request) {
			var req api.VerifyRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "challenge-token", req.MfaSessionToken)
			assert.Equal(t, api.OTPCode("123456"), req.OtpCode)

			writeJSON(w, http.StatusOK, api.VerifyResponse{Message: "MFA verified", Token: api.String("session-token")})
		})

		resp, err := client.VerifyMfa(context.Background(), api.VerifyRequest{
			Username:        "alice@example.com",
			MfaSessionToken: "challenge-token",
			OtpCode:         "123456",
		})
		require.NoError(t, err)
		assert.Equal(t, "session-token", *resp.Token)
	})

	t.Run("invalid code", func(t *testing.T) {
		client := newTestServer(t, http.MethodPost, "/api/mfa/verify", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, api.VerifyResponse{Message: "Invalid MFA code", ErrorCode: api.String(api.CodeInvalidMfaCode)})
		})

		_, err := client.VerifyMfa(context.Background(), api.VerifyRequest{Username: "a", MfaSessionToken: "b", OtpCode: "c"})
		require.Error(t, err)
		assert.True(t, HasCode(err, api.CodeInvalidMfaCode))
	})

	t.Run("missing token", func(t *testing.T) {
		client := newTestServer(t, http.MethodPost, "/api/mfa/verify", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, api.VerifyResponse{Message: "MFA verified"})
		})

		_, err := client.VerifyMfa(context.Background(), api.VerifyRequest{Username: "a", MfaSessionToken: "b", OtpCode: "c"})
		require.Error(t, err)
	})
}

func TestClient_Session(t *testing.T) {
	expiresAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	client := newTestServer(t, http.MethodGet, "/api/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer session-token" {
			writeJSON(w, http.StatusUnauthorized, api.MessageResponse{
				Message:   "Invalid or expired session",
				ErrorCode: api.String(api.CodeInvalidSession),
			})
			return
		}
		writeJSON(w, http.StatusOK, api.SessionResponse{
			Message:   "Session is valid",
			UserID:    "user-1",
			Username:  "alice@example.com",
			ExpiresAt: &expiresAt,
		})
	})

	resp, err := client.Session(context.Background(), "session-token")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Username)
	require.NotNil(t, resp.ExpiresAt)
	assert.True(t, expiresAt.Equal(*resp.ExpiresAt))

	_, err = client.Session(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, HasCode(err, api.CodeInvalidSession))
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestServer(t, http.MethodPost, "/api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.AuthResponse{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Login(ctx, api.LoginRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
