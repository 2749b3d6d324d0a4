package auth

import (
	"context"
	"errors"
	"fmt"
)

// TwoFactorChallenge verifies a pending login against its transient 2FA
// token. The token is single-use: a failed verification means the whole login
// attempt must be restarted.
func (a *Authenticator) TwoFactorChallenge(ctx context.Context, twoFactorToken string) error {
	_, _ = fmt.Fprintln(a.out(), "Two-factor authentication required.")
	code, err := a.prompt().Input("Enter the code from your authenticator app (or a recovery code):")
	if err != nil {
		return err
	}
	if code == "" {
		return &ValidationError{Field: "2FA code"}
	}

	token, err := a.API.Auth().TwoFactorAuthenticate(ctx, twoFactorToken, code)
	if err != nil {
		return fmt.Errorf("two-factor authentication failed: %w", err)
	}
	if token == "" {
		return errors.New("two-factor authentication failed: received an unexpected response from the server")
	}
	return a.commitSession(token)
}
