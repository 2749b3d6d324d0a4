package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/clipshare/clipctl/pkg/client"
	"github.com/clipshare/clipctl/pkg/term"
)

// LoginTimeout bounds the wait for the browser callback.
const LoginTimeout = 120 * time.Second

// Authenticator drives one login attempt. Exactly one of the flows runs per
// invocation; a failed attempt is re-issued by the user, never retried here.
type Authenticator struct {
	API     *client.Client
	Store   SessionStore
	Browser BrowserOpener
	Prompt  term.Prompter
	Out     io.Writer
	Log     *zap.SugaredLogger

	// CallbackAddr and Timeout override the fixed port and the 120 s
	// deadline in tests.
	CallbackAddr string
	Timeout      time.Duration
}

// OAuthLogin runs the browser-based flow for one provider: start the callback
// listener, send the user's browser to the authorization URL, then wait for
// exactly one outcome or the deadline.
func (a *Authenticator) OAuthLogin(ctx context.Context, provider string) error {
	listenCtx, cancelListener := context.WithCancel(ctx)
	defer cancelListener()

	listener := &CallbackListener{Addr: a.CallbackAddr}
	outcomes := make(chan Outcome, 1)
	go listener.Run(listenCtx, outcomes)

	loginURL := fmt.Sprintf("%s/auth/%s?client=cli&redirect_uri=%s",
		a.API.BaseURL(), url.PathEscape(provider), url.QueryEscape(listener.CallbackURL()))

	_, _ = fmt.Fprintln(a.out(), "Opening your browser to complete login...")
	if err := a.browser().Open(loginURL); err != nil {
		a.log().Debugw("browser open failed", "error", err)
		_, _ = fmt.Fprintf(a.out(), "Could not open browser automatically.\nPlease visit this URL to log in:\n%s\n", loginURL)
	}
	_, _ = fmt.Fprintln(a.out(), "Waiting for authentication...")

	timer := time.NewTimer(a.timeout())
	defer timer.Stop()

	var outcome Outcome
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		// Cancel the listener; safe whether or not it already finished.
		cancelListener()
		return ErrLoginTimeout
	case outcome = <-outcomes:
		cancelListener()
	}

	switch outcome.Kind {
	case OutcomeError:
		if outcome.Reason == reasonPortInUse {
			return fmt.Errorf("%w: could not bind 127.0.0.1:%d, is another process using it?",
				ErrPortInUse, CallbackPort)
		}
		return errors.New(outcome.Reason)
	case OutcomeTwoFactor:
		return a.TwoFactorChallenge(ctx, outcome.Token)
	case OutcomeSession:
		return a.commitSession(outcome.Token)
	default:
		return fmt.Errorf("unhandled callback outcome kind %d", outcome.Kind)
	}
}

// Logout removes the stored session. The server-side revocation is best
// effort: the local credential is deleted even when the API call fails.
func (a *Authenticator) Logout(ctx context.Context) error {
	token, err := a.Store.Load()
	if err != nil {
		return err
	}
	api, err := client.New(client.WithServer(a.API.BaseURL()), client.WithToken(token))
	if err == nil {
		if err := api.Auth().Logout(ctx); err != nil {
			a.log().Debugw("server logout failed", "error", err)
		}
	}
	return a.Store.Delete()
}

func (a *Authenticator) commitSession(token string) error {
	if token == "" {
		return errors.New("received an empty session token from the server")
	}
	if err := a.Store.Save(token); err != nil {
		return fmt.Errorf("authenticated, but failed to persist session: %w", err)
	}
	_, _ = fmt.Fprintln(a.out(), "Login successful!")
	return nil
}

func (a *Authenticator) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *Authenticator) browser() BrowserOpener {
	if a.Browser != nil {
		return a.Browser
	}
	return ExecBrowser{}
}

func (a *Authenticator) prompt() term.Prompter {
	if a.Prompt != nil {
		return a.Prompt
	}
	return term.NewTerminal()
}

func (a *Authenticator) timeout() time.Duration {
	if a.Timeout > 0 {
		return a.Timeout
	}
	return LoginTimeout
}

func (a *Authenticator) log() *zap.SugaredLogger {
	if a.Log != nil {
		return a.Log
	}
	return zap.NewNop().Sugar()
}
