package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clipshare/clipctl/pkg/auth"
)

const (
	methodGitHub   = "GitHub"
	methodGoogle   = "Google"
	methodDiscord  = "Discord"
	methodPassword = "Email/Password"
	methodRegister = "Register new account"
)

var oauthProviders = []string{"github", "google", "discord"}

func NewLoginCommand() *cobra.Command {
	var browserProvider string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to Clipshare",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			api, err := buildClient(rt)
			if err != nil {
				return err
			}
			authn, err := buildAuthenticator(rt, api)
			if err != nil {
				return err
			}

			if browserProvider != "" {
				provider := strings.ToLower(browserProvider)
				if !isOAuthProvider(provider) {
					return fmt.Errorf("unknown provider %q, expected one of: %s",
						browserProvider, strings.Join(oauthProviders, ", "))
				}
				return authn.OAuthLogin(cmd.Context(), provider)
			}

			choice, err := rt.Prompter().Select("How would you like to proceed?", []string{
				methodGitHub, methodGoogle, methodDiscord, methodPassword, methodRegister,
			})
			if err != nil {
				return err
			}
			switch choice {
			case methodGitHub, methodGoogle, methodDiscord:
				return authn.OAuthLogin(cmd.Context(), strings.ToLower(choice))
			case methodPassword:
				return authn.PasswordLogin(cmd.Context())
			case methodRegister:
				return authn.Register(cmd.Context())
			default:
				return fmt.Errorf("unknown login method: %s", choice)
			}
		},
	}

	cmd.Flags().StringVarP(&browserProvider, "browser", "b", "", "Skip the menu and log in via this OAuth provider (github, google, discord)")

	return cmd
}

func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and remove the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			api, err := buildClient(rt)
			if err != nil {
				return err
			}
			authn, err := buildAuthenticator(rt, api)
			if err != nil {
				return err
			}
			if err := authn.Logout(cmd.Context()); err != nil {
				if errors.Is(err, auth.ErrNoSession) {
					_, _ = fmt.Fprintln(rt.Writer(), "Not logged in.")
					return nil
				}
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), "You have been logged out.")
			return nil
		},
	}
}

func isOAuthProvider(name string) bool {
	for _, p := range oauthProviders {
		if p == name {
			return true
		}
	}
	return false
}
