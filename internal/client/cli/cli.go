package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/iudanet/hearthabitz/internal/client/auth"
	"github.com/iudanet/hearthabitz/internal/client/iocli"
	"github.com/iudanet/hearthabitz/internal/otp"
)

// ErrUnknownCommand команда не распознана
var ErrUnknownCommand = errors.New("unknown command")

// Cli выполняет команды клиента поверх auth.Service
type Cli struct {
	io          iocli.IO
	authService *auth.Service
	writeFile   func(name string, data []byte, perm os.FileMode) error
}

// New создает CLI
func New(io iocli.IO, authService *auth.Service) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		writeFile:   os.WriteFile,
	}
}

// showEnrollment печатает QR код и ключ для ручного ввода
func (c *Cli) showEnrollment(uri, key string) {
	c.io.Println("Scan this QR code with your authenticator app:")
	c.io.Println()

	qr, err := otp.QRCodeTerminal(uri)
	if err != nil {
		c.io.Printf("Failed to render QR code: %v\n", err)
	} else {
		_, _ = c.io.Write([]byte(qr))
	}

	c.io.Println()
	c.io.Printf("Or enter this key manually: %s\n", key)
	c.io.Printf("otpauth URI: %s\n", uri)
	c.io.Println()
}

// verify запрашивает OTP код и завершает вход
func (c *Cli) verify(ctx context.Context, challenge *auth.Challenge) error {
	code, err := c.io.ReadInput("OTP code: ")
	if err != nil {
		return fmt.Errorf("failed to read otp code: %w", err)
	}

	session, err := c.authService.Verify(ctx, challenge, code)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Authentication successful!")
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Println("Your session has been saved.")

	return nil
}

// PrintUsage печатает справку по командам
func PrintUsage(out iocli.IO) {
	out.Println("HeartHabitz Client")
	out.Println()
	out.Println("Usage:")
	out.Println("  hearthabitz [OPTIONS] COMMAND [ARGS]")
	out.Println()
	out.Println("Options:")
	out.Println("  --version          Show version information")
	out.Println("  --server URL       Server URL (default: http://localhost:8080)")
	out.Println("  --db PATH          Path to local database (default: hearthabitz-client.db)")
	out.Println()
	out.Println("Commands:")
	out.Println("  register                           Register new user and set up MFA")
	out.Println("  login                              Login with password and OTP code")
	out.Println("  enroll [--qr-png PATH] [USERNAME]  Show TOTP secret for authenticator app")
	out.Println("  status                             Show authentication status")
	out.Println("  logout                             Delete local session")
	out.Println()
	out.Println("Examples:")
	out.Println("  hearthabitz register")
	out.Println("  hearthabitz --server https://example.com login")
	out.Println("  hearthabitz enroll --qr-png qr.png alice@example.com")
}
