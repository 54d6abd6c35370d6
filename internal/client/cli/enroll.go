package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/hearthabitz/internal/otp"
)

func (c *Cli) runEnroll(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	qrPath := fs.String("qr-png", "", "Write QR code PNG to file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid enroll arguments: %w", err)
	}

	username := fs.Arg(0)
	if username == "" {
		var err error
		username, err = c.io.ReadInput("Username: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	enrollment, err := c.authService.Enroll(ctx, username)
	if err != nil {
		return err
	}

	c.io.Println("=== MFA Enrollment ===")
	c.io.Println()
	c.showEnrollment(enrollment.OtpAuthURI, enrollment.ManualEntryKey)

	if *qrPath != "" {
		png, err := otp.QRCodePNG(enrollment.OtpAuthURI, otp.DefaultQRSize)
		if err != nil {
			return err
		}
		if err := c.writeFile(*qrPath, png, 0600); err != nil {
			return fmt.Errorf("failed to write qr code: %w", err)
		}
		c.io.Printf("QR code saved to %s\n", *qrPath)
	}

	return nil
}
