package auth

import (
	"os/exec"
	"runtime"
)

// BrowserOpener opens a URL in the user's default browser. Opening is best
// effort: callers print the URL for manual use when Open fails.
type BrowserOpener interface {
	Open(url string) error
}

// ExecBrowser shells out to the platform opener.
type ExecBrowser struct{}

func (ExecBrowser) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
