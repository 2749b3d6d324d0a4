package system

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Clipboard copies text for the user. Best effort: callers report a copy
// failure but never fail the surrounding command because of it.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// WaylandClipboard shells out to wl-copy.
type WaylandClipboard struct{}

func (WaylandClipboard) Copy(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, "wl-copy")
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wl-copy failed: %w", err)
	}
	return nil
}
