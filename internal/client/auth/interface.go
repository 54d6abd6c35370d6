package auth

import (
	"context"

	"github.com/iudanet/hearthabitz/pkg/api"
)

//go:generate moq -out apiclient_mock.go . APIClient

// APIClient HTTP операции сервера, которые использует клиентский сервис
type APIClient interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Enroll(ctx context.Context, req api.EnrollRequest) (*api.EnrollResponse, error)
	VerifyMfa(ctx context.Context, req api.VerifyRequest) (*api.VerifyResponse, error)
	Session(ctx context.Context, token string) (*api.SessionResponse, error)
}
