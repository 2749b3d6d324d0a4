package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clipshare/clipctl/pkg/client"
)

// PasswordLogin collects credentials, posts them to the login endpoint and
// classifies the response: committed session, mandatory 2FA pivot, or a
// surfaced failure.
func (a *Authenticator) PasswordLogin(ctx context.Context) error {
	email, err := a.prompt().Input("Enter your email:")
	if err != nil {
		return err
	}
	if email == "" {
		return &ValidationError{Field: "email"}
	}
	password, err := a.prompt().Password("Enter your password:")
	if err != nil {
		return err
	}
	if password == "" {
		return &ValidationError{Field: "password"}
	}

	resp, err := a.API.Auth().Login(ctx, email, password)
	if err != nil {
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) && strings.Contains(httpErr.Message, "verify your email") {
			return a.offerVerificationResend(ctx, email)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if resp.TwoFactorRequired {
		if resp.TwoFactorToken == "" {
			return errors.New("two-factor authentication is required but no challenge token was provided")
		}
		return a.TwoFactorChallenge(ctx, resp.TwoFactorToken)
	}
	if resp.Token == "" {
		return errors.New("received an unexpected response from the server")
	}
	return a.commitSession(resp.Token)
}

// offerVerificationResend gives the user a chance to trigger a fresh
// verification mail. The login attempt still fails either way.
func (a *Authenticator) offerVerificationResend(ctx context.Context, email string) error {
	resend, err := a.prompt().Confirm("Your email is not verified. Resend the verification email?", true)
	if err == nil && resend {
		if err := a.API.Auth().ResendVerification(ctx, email); err != nil {
			_, _ = fmt.Fprintln(a.out(), "Could not send verification email.")
		} else {
			_, _ = fmt.Fprintln(a.out(), "Verification email sent (if the account exists).")
		}
	}
	return errors.New("please verify your email before logging in")
}
