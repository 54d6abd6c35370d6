package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/hearthabitz/internal/server/handlers"
	"github.com/iudanet/hearthabitz/internal/server/middleware"
	"github.com/iudanet/hearthabitz/internal/server/storage"
)

// Service все операции, которые обслуживает HTTP слой
type Service interface {
	handlers.AuthService
	handlers.DataService
	middleware.SessionValidator
}

// RouterConfig параметры HTTP маршрутизатора
type RouterConfig struct {
	Version        string
	RequestTimeout time.Duration
}

// NewRouter собирает маршруты /api с middleware
func NewRouter(logger *slog.Logger, svc Service, db storage.Pinger, cfg RouterConfig) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, svc)
	dataHandler := handlers.NewDataHandler(logger, svc)
	healthHandler := handlers.NewHealthHandler(logger, db, cfg.Version)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingWithSkip(logger, []string{"/api/health"}))
	r.Use(middleware.RecoveryMiddleware(logger))
	if cfg.RequestTimeout > 0 {
		// Дедлайн запроса ограничивает и ожидание соединения из пула
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/mfa/enroll", authHandler.Enroll)
		r.Post("/mfa/verify", authHandler.VerifyMfa)
		r.Post("/data", dataHandler.Save)
		r.Get("/health", healthHandler.Health)

		r.With(middleware.SessionMiddleware(logger, svc)).Get("/session", authHandler.Session)
	})

	return r
}
