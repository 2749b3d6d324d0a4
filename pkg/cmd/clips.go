package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipshare/clipctl/pkg/auth"
	"github.com/clipshare/clipctl/pkg/system"
)

func NewShareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "share <name>",
		Short: "Upload a clip and get its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			api, err := buildAuthClient(rt)
			if err != nil {
				return err
			}
			resolver := &system.DirResolver{Dir: rt.ClipsDir()}
			clip, err := resolver.Resolve(args[0])
			if err != nil {
				return err
			}

			confirmed, err := rt.Prompter().Confirm(
				fmt.Sprintf("Share clip %q?", clip.Name), true)
			if err != nil {
				return err
			}
			if !confirmed {
				_, _ = fmt.Fprintln(rt.Writer(), "Share cancelled.")
				return nil
			}

			_, _ = fmt.Fprintln(rt.Writer(), "Uploading clip...")
			shared, err := api.Clips().Share(cmd.Context(), clip.Path)
			if err != nil {
				return fmt.Errorf("failed to share clip: %w", err)
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Clip shared successfully!\n  Public URL: %s\n", shared.URL)

			if err := resolver.SetHostedID(clip.Name, shared.ID); err != nil {
				rt.Logger().Debugw("failed to record hosted id", "error", err)
			}
			copyToClipboard(rt, cmd, shared.URL)
			return nil
		},
	}
}

func NewURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "url <name>",
		Short: "Print the public URL of a hosted clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			url, err := hostedClipURL(rt, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "  %s\n", url)
			copyToClipboard(rt, cmd, url)
			return nil
		},
	}
}

func NewOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open a hosted clip in your browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			url, err := hostedClipURL(rt, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Opening URL in browser: %s\n", url)
			if err := (auth.ExecBrowser{}).Open(url); err != nil {
				return fmt.Errorf("failed to open URL in browser: %w", err)
			}
			return nil
		},
	}
}

func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a clip locally and/or on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			resolver := &system.DirResolver{Dir: rt.ClipsDir()}
			clip, err := resolver.Resolve(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Preparing to delete %q.\n", clip.Name)

			if clip.HostedID != nil {
				confirmed, err := rt.Prompter().Confirm("This clip is hosted on the server. Delete the server copy?", true)
				if err != nil {
					return err
				}
				if confirmed {
					api, err := buildAuthClient(rt)
					if err != nil {
						return err
					}
					if err := api.Clips().Delete(cmd.Context(), *clip.HostedID); err != nil {
						return fmt.Errorf("failed to delete server copy: %w", err)
					}
					_, _ = fmt.Fprintln(rt.Writer(), "Server copy deleted.")
				}
			}

			confirmed, err := rt.Prompter().Confirm("Delete the local file? This cannot be undone.", false)
			if err != nil {
				return err
			}
			if confirmed {
				if err := os.Remove(clip.Path); err != nil {
					return fmt.Errorf("failed to delete local file: %w", err)
				}
				_, _ = fmt.Fprintln(rt.Writer(), "Local file deleted.")
			}
			return nil
		},
	}
}

func hostedClipURL(rt *runtimeState, name string) (string, error) {
	resolver := &system.DirResolver{Dir: rt.ClipsDir()}
	clip, err := resolver.Resolve(name)
	if err != nil {
		return "", err
	}
	if clip.HostedID == nil {
		return "", fmt.Errorf("%q is not a hosted clip and does not have a public URL", clip.Name)
	}
	api, err := buildClient(rt)
	if err != nil {
		return "", err
	}
	return api.Clips().PublicURL(*clip.HostedID), nil
}

func copyToClipboard(rt *runtimeState, cmd *cobra.Command, text string) {
	clipboard := system.WaylandClipboard{}
	if err := clipboard.Copy(cmd.Context(), text); err != nil {
		_, _ = fmt.Fprintf(rt.Writer(), "Could not copy URL to clipboard: %v\n", err)
		return
	}
	_, _ = fmt.Fprintln(rt.Writer(), "URL copied to clipboard!")
}
