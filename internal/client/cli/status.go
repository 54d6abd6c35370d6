package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/hearthabitz/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	session, err := c.authService.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			c.notAuthenticated()
			return nil
		}
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	c.io.Printf("Username: %s\n", session.Username)
	if session.ExpiresAt > 0 {
		expiresAt := time.Unix(session.ExpiresAt, 0)
		c.io.Printf("Session expires: %s\n", expiresAt.Format(time.RFC3339))
	}

	// Сервер последнее слово: сессия могла истечь или быть удалена
	if _, err := c.authService.CheckSession(ctx); err != nil {
		if errors.Is(err, auth.ErrSessionRejected) {
			c.io.Println("⚠️  Session is no longer valid. Please login again.")
			return nil
		}
		c.io.Printf("Status: Unknown (server check failed: %v)\n", err)
		return nil
	}

	c.io.Println("Status: Authenticated")
	return nil
}

func (c *Cli) notAuthenticated() {
	c.io.Println("Status: Not authenticated")
	c.io.Println()
	c.io.Println("Run 'hearthabitz login' to authenticate.")
}
