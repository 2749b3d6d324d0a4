package auth

import (
	"context"
	"errors"
	"fmt"
)

// TwoFactorEnroll sets up a new authenticator secret for the logged-in
// account. The secret only becomes active once the confirmation code
// verifies; any failure aborts the enrollment. Recovery codes are shown
// exactly once and cannot be retrieved again through this flow.
func (a *Authenticator) TwoFactorEnroll(ctx context.Context) error {
	setup, err := a.API.Auth().TwoFactorSetup(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize 2FA setup, are you logged in? (%w)", err)
	}
	if setup.Secret == "" {
		return errors.New("no 2FA secret received from the server")
	}

	out := a.out()
	_, _ = fmt.Fprintln(out, "Two-Factor Authentication Setup")
	_, _ = fmt.Fprintln(out, "1. Install an authenticator app (Google Authenticator, Authy, ...)")
	_, _ = fmt.Fprintln(out, "2. Scan the QR code below OR manually enter this secret:")
	_, _ = fmt.Fprintf(out, "   %s\n", setup.Secret)
	if setup.QRCodeBase64 != "" {
		_, _ = fmt.Fprintln(out, "\n3. QR code (if your terminal supports it):")
		_, _ = fmt.Fprintln(out, setup.QRCodeBase64)
	}
	_, _ = fmt.Fprintln(out, "\n4. Enter a code from the app to verify:")

	code, err := a.prompt().Input("Enter verification code:")
	if err != nil {
		return err
	}
	if code == "" {
		return &ValidationError{Field: "verification code"}
	}

	recoveryCodes, err := a.API.Auth().TwoFactorVerify(ctx, setup.Secret, code)
	if err != nil {
		return fmt.Errorf("2FA setup failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, "2FA enabled successfully!")
	if len(recoveryCodes) > 0 {
		_, _ = fmt.Fprintln(out, "\nIMPORTANT: save these recovery codes in a safe place:")
		for i, rc := range recoveryCodes {
			_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, rc)
		}
		_, _ = fmt.Fprintln(out, "\nThey grant access to your account if you lose your 2FA device.")
	}
	return nil
}
