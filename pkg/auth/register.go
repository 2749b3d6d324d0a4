package auth

import (
	"context"
	"fmt"

	"github.com/clipshare/clipctl/pkg/client"
)

// Register creates a new account. The user still has to verify their email
// before the first login.
func (a *Authenticator) Register(ctx context.Context) error {
	_, _ = fmt.Fprintln(a.out(), "Create a new account")
	username, err := a.prompt().Input("Enter your username:")
	if err != nil {
		return err
	}
	if username == "" {
		return &ValidationError{Field: "username"}
	}
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

	req := client.RegisterRequest{Username: username, Email: email, Password: password}
	if err := a.API.Auth().Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	_, _ = fmt.Fprintln(a.out(), "Registration successful!")
	_, _ = fmt.Fprintln(a.out(), "Please check your email to verify your account before logging in.")
	return nil
}
