package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipshare/clipctl/pkg/system"
)

func daemonController(rt *runtimeState) system.DaemonController {
	unit := ""
	if rt.cfg != nil {
		unit = rt.cfg.DaemonUnit
	}
	return &system.SystemdController{Unit: unit}
}

func NewSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Tell the running daemon to save the replay buffer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if !daemonController(rt).IsRunning(cmd.Context()) {
				return errors.New("daemon is not running, start it with: clipctl daemon start")
			}
			trigger := &system.ExecTrigger{Path: rt.cfg.TriggerPath}
			if err := trigger.Run(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), "Clip saved.")
			return nil
		},
	}
}

func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Control the background capture daemon",
	}
	cmd.AddCommand(
		newDaemonActionCommand("start", "Start the capture daemon", system.DaemonController.Start),
		newDaemonActionCommand("stop", "Stop the capture daemon", system.DaemonController.Stop),
		newDaemonActionCommand("restart", "Restart the capture daemon", system.DaemonController.Restart),
		newDaemonStatusCommand(),
		newDaemonLogsCommand(),
		newDaemonAutostartCommand(),
	)
	return cmd
}

func newDaemonActionCommand(verb, short string, action func(system.DaemonController, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := action(daemonController(rt), cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Daemon %s requested.\n", verb)
			return nil
		},
	}
}

func newDaemonStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the capture daemon is running",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if daemonController(rt).IsRunning(cmd.Context()) {
				_, _ = fmt.Fprintln(rt.Writer(), "Daemon is running.")
			} else {
				_, _ = fmt.Fprintln(rt.Writer(), "Daemon is not running.")
			}
			return nil
		},
	}
}

func newDaemonLogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Follow the capture daemon logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			return daemonController(rt).Logs(cmd.Context())
		},
	}
}

func newDaemonAutostartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Enable or disable daemon autostart",
	}
	for _, state := range []struct {
		verb    string
		enabled bool
	}{{"on", true}, {"off", false}} {
		state := state
		cmd.AddCommand(&cobra.Command{
			Use:   state.verb,
			Short: fmt.Sprintf("Turn daemon autostart %s", state.verb),
			RunE: func(cmd *cobra.Command, _ []string) error {
				rt, err := getRuntime(cmd)
				if err != nil {
					return err
				}
				if err := daemonController(rt).SetAutostart(cmd.Context(), state.enabled); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(rt.Writer(), "Daemon autostart turned %s.\n", state.verb)
				return nil
			},
		})
	}
	return cmd
}
