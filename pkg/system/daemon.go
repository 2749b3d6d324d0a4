package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const defaultDaemonUnit = "clipshared.service"

// DaemonController manages the background capture daemon. The default
// implementation drives a systemd user unit; tests substitute their own.
type DaemonController interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	IsRunning(ctx context.Context) bool
	Logs(ctx context.Context) error
	SetAutostart(ctx context.Context, enabled bool) error
}

// SystemdController controls the daemon through `systemctl --user`.
type SystemdController struct {
	Unit string
}

func (c *SystemdController) unit() string {
	if c.Unit != "" {
		return c.Unit
	}
	return defaultDaemonUnit
}

func (c *SystemdController) Start(ctx context.Context) error {
	return c.systemctl(ctx, "start")
}

func (c *SystemdController) Stop(ctx context.Context) error {
	return c.systemctl(ctx, "stop")
}

func (c *SystemdController) Restart(ctx context.Context) error {
	return c.systemctl(ctx, "restart")
}

func (c *SystemdController) IsRunning(ctx context.Context) bool {
	out, err := exec.CommandContext(ctx, "systemctl", "--user", "is-active", c.unit()).Output()
	return err == nil && strings.TrimSpace(string(out)) == "active"
}

func (c *SystemdController) Logs(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "journalctl", "--user", "-u", c.unit(), "-f")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (c *SystemdController) SetAutostart(ctx context.Context, enabled bool) error {
	verb := "enable"
	if !enabled {
		verb = "disable"
	}
	return c.systemctl(ctx, verb)
}

func (c *SystemdController) systemctl(ctx context.Context, verb string) error {
	out, err := exec.CommandContext(ctx, "systemctl", "--user", verb, c.unit()).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s %s failed: %s", verb, c.unit(), strings.TrimSpace(string(out)))
	}
	return nil
}

// Trigger runs the capture trigger binary that tells the daemon to save the
// replay buffer.
type Trigger interface {
	Run(ctx context.Context) error
}

type ExecTrigger struct {
	Path string
}

func (t *ExecTrigger) Run(ctx context.Context) error {
	if t.Path == "" {
		return fmt.Errorf("trigger-path is not configured")
	}
	cmd := exec.CommandContext(ctx, t.Path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("trigger process failed: %w", err)
	}
	return nil
}
