package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipshare/clipctl/pkg/client"
	"github.com/clipshare/clipctl/pkg/output"
)

func NewMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your profile and usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			api, err := buildAuthClient(rt)
			if err != nil {
				return err
			}
			profile, err := api.Users().Me(cmd.Context())
			if err != nil {
				if client.IsUnauthorized(err) {
					return fmt.Errorf("your session has expired, run 'clipctl login' again")
				}
				return fmt.Errorf("failed to fetch profile: %w", err)
			}

			format, err := output.ParseFormat(rt.OutputFormat())
			if err != nil {
				return err
			}
			if format == output.FormatTable {
				output.WriteProfile(rt.Writer(), profile)
				return nil
			}
			return output.WriteObject(rt.Writer(), format, profile)
		},
	}
}

func NewTwoFactorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "2fa",
		Short: "Manage two-factor authentication",
	}
	cmd.AddCommand(
		newTwoFactorSetupCommand(),
		newTwoFactorStatusCommand(),
	)
	return cmd
}

func newTwoFactorSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Enable two-factor authentication for your account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			api, err := buildAuthClient(rt)
			if err != nil {
				return err
			}
			authn, err := buildAuthenticator(rt, api)
			if err != nil {
				return err
			}
			return authn.TwoFactorEnroll(cmd.Context())
		},
	}
}

func newTwoFactorStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether two-factor authentication is enabled",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			api, err := buildAuthClient(rt)
			if err != nil {
				return err
			}
			profile, err := api.Users().Me(cmd.Context())
			if err != nil {
				if client.IsUnauthorized(err) {
					return fmt.Errorf("your session has expired, run 'clipctl login' again")
				}
				return fmt.Errorf("failed to fetch 2FA status: %w", err)
			}
			if profile.User.TwoFactorEnabled {
				_, _ = fmt.Fprintln(rt.Writer(), "Two-factor authentication is enabled.")
			} else {
				_, _ = fmt.Fprintln(rt.Writer(), "Two-factor authentication is disabled. Enable it with 'clipctl 2fa setup'.")
			}
			return nil
		},
	}
}
