package auth

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"net"
	"strings"
	"time"
)

const (
	// CallbackPort is the fixed loopback port the API redirects back to.
	// It must match the redirect URI registered with the OAuth providers.
	CallbackPort = 54321

	// CallbackPath is the request path the redirect lands on.
	CallbackPath = "/auth/callback"

	reasonPortInUse = "port"

	connDeadline = 10 * time.Second
)

//go:embed assets/success.html
var successPage string

// CallbackListener serves exactly one loopback connection and delivers at
// most one Outcome. The browser always receives the static confirmation page,
// even when no outcome can be parsed from the request.
type CallbackListener struct {
	// Addr overrides the default 127.0.0.1:54321 bind address (tests only).
	Addr string
}

func (l *CallbackListener) addr() string {
	if l.Addr != "" {
		return l.Addr
	}
	return fmt.Sprintf("127.0.0.1:%d", CallbackPort)
}

// CallbackURL is the redirect URI embedded in the authorization URL.
func (l *CallbackListener) CallbackURL() string {
	return fmt.Sprintf("http://%s%s", l.addr(), CallbackPath)
}

// Run binds the callback port, accepts a single connection and sends the
// parsed outcome on outcomes. A bind conflict is reported immediately as an
// error outcome. Cancelling ctx unblocks the accept and releases the port;
// cancelling after Run returned is a no-op.
func (l *CallbackListener) Run(ctx context.Context, outcomes chan<- Outcome) {
	listener, err := net.Listen("tcp", l.addr())
	if err != nil {
		outcomes <- Outcome{Kind: OutcomeError, Reason: reasonPortInUse}
		return
	}
	defer func() {
		_ = listener.Close()
	}()
	stop := context.AfterFunc(ctx, func() {
		_ = listener.Close()
	})
	defer stop()

	conn, err := listener.Accept()
	if err != nil {
		// Cancelled or listener closed before a connection arrived.
		return
	}
	defer func() {
		_ = conn.Close()
	}()
	_ = conn.SetDeadline(time.Now().Add(connDeadline))

	requestLine, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && requestLine == "" {
		return
	}
	if outcome, ok := parseCallback(requestLine); ok {
		outcomes <- outcome
	}
	// The page is served regardless of whether an outcome was extracted, so
	// the user's browser never shows a broken redirect.
	response := fmt.Sprintf(
		"HTTP/1.1 200 OK\r\nContent-Type: text/html; charset=utf-8\r\nContent-Length: %d\r\nConnection: close\r\n\r\n%s",
		len(successPage), successPage,
	)
	_, _ = conn.Write([]byte(response))
}

// parseCallback extracts an outcome from the HTTP request line. The first
// token= parameter wins; failing that, the first 2fa_token= parameter. Any
// other request yields no outcome and the login attempt times out.
func parseCallback(requestLine string) (Outcome, bool) {
	fields := strings.Fields(requestLine)
	if len(fields) < 2 {
		return Outcome{}, false
	}
	target := fields[1]
	path, query, hasQuery := strings.Cut(target, "?")
	if path != CallbackPath || !hasQuery {
		return Outcome{}, false
	}
	var twoFactor string
	for _, param := range strings.Split(query, "&") {
		if token, ok := strings.CutPrefix(param, "token="); ok {
			return Outcome{Kind: OutcomeSession, Token: token}, true
		}
		if token, ok := strings.CutPrefix(param, "2fa_token="); ok && twoFactor == "" {
			twoFactor = token
		}
	}
	if twoFactor != "" {
		return Outcome{Kind: OutcomeTwoFactor, Token: twoFactor}, true
	}
	return Outcome{}, false
}
