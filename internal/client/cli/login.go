package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	challenge, err := c.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if challenge.SetupRequired && challenge.OtpAuthURI != "" {
		c.showEnrollment(challenge.OtpAuthURI, challenge.ManualEntryKey)
	}

	return c.verify(ctx, challenge)
}
