package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/hearthabitz/internal/config"
	"github.com/iudanet/hearthabitz/internal/crypto"
	"github.com/iudanet/hearthabitz/internal/otp"
	"github.com/iudanet/hearthabitz/internal/server"
	"github.com/iudanet/hearthabitz/internal/server/auth"
	"github.com/iudanet/hearthabitz/internal/server/storage/sqlstore"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to .env config file (default: ./.env if present)")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.New(ctx, sqlstore.Config{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	provisioner, err := otp.NewProvisioner(cfg.OTPIssuer)
	if err != nil {
		return err
	}

	service, err := auth.NewService(
		logger,
		store,
		crypto.NewPasswordHasher(cfg.BcryptCost),
		provisioner,
		otp.NewVerifier(otp.DefaultWindow),
		auth.Config{
			ChallengeTTL: cfg.ChallengeTTL,
			SessionTTL:   cfg.SessionTTL,
		},
	)
	if err != nil {
		return err
	}

	go server.RunJanitor(ctx, logger, service, cfg.CleanupInterval)

	router := server.NewRouter(logger, service, store, server.RouterConfig{
		Version:        Version,
		RequestTimeout: cfg.RequestTimeout,
	})

	logger.Info("HeartHabitz server starting",
		"version", Version,
		"addr", cfg.HTTPAddr,
		"db_driver", cfg.DBDriver,
		"otp_issuer", cfg.OTPIssuer,
	)

	return server.New(logger, cfg.HTTPAddr, router, cfg.ShutdownTimeout).Run(ctx)
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
}

func printVersion() {
	fmt.Printf("HeartHabitz Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
