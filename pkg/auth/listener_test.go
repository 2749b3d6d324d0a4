package auth

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name        string
		requestLine string
		wantKind    OutcomeKind
		wantToken   string
		wantOK      bool
	}{
		{
			name:        "session token",
			requestLine: "GET /auth/callback?token=abc123 HTTP/1.1",
			wantKind:    OutcomeSession,
			wantToken:   "abc123",
			wantOK:      true,
		},
		{
			name:        "session token wins over earlier 2fa token",
			requestLine: "GET /auth/callback?2fa_token=xyz&token=abc HTTP/1.1",
			wantKind:    OutcomeSession,
			wantToken:   "abc",
			wantOK:      true,
		},
		{
			name:        "first session token wins",
			requestLine: "GET /auth/callback?token=first&token=second HTTP/1.1",
			wantKind:    OutcomeSession,
			wantToken:   "first",
			wantOK:      true,
		},
		{
			name:        "two-factor token",
			requestLine: "GET /auth/callback?2fa_token=pending42 HTTP/1.1",
			wantKind:    OutcomeTwoFactor,
			wantToken:   "pending42",
			wantOK:      true,
		},
		{
			name:        "two-factor token among other params",
			requestLine: "GET /auth/callback?state=1&2fa_token=p&flavor=x HTTP/1.1",
			wantKind:    OutcomeTwoFactor,
			wantToken:   "p",
			wantOK:      true,
		},
		{
			name:        "no recognized params",
			requestLine: "GET /auth/callback?code=zz&state=1 HTTP/1.1",
			wantOK:      false,
		},
		{
			name:        "no query string",
			requestLine: "GET /auth/callback HTTP/1.1",
			wantOK:      false,
		},
		{
			name:        "wrong path",
			requestLine: "GET /favicon.ico?token=abc HTTP/1.1",
			wantOK:      false,
		},
		{
			name:        "garbage request line",
			requestLine: "not-http",
			wantOK:      false,
		},
		{
			name:        "empty line",
			requestLine: "",
			wantOK:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, ok := parseCallback(tt.requestLine)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantKind, outcome.Kind)
			assert.Equal(t, tt.wantToken, outcome.Token)
		})
	}
}

func runListener(ctx context.Context, addr string) (<-chan Outcome, <-chan struct{}) {
	outcomes := make(chan Outcome, 1)
	done := make(chan struct{})
	listener := &CallbackListener{Addr: addr}
	go func() {
		defer close(done)
		listener.Run(ctx, outcomes)
	}()
	return outcomes, done
}

func exchange(t *testing.T, addr, requestLine string) string {
	t.Helper()
	conn := dialCallback(t, addr)
	defer func() {
		_ = conn.Close()
	}()
	_, err := conn.Write([]byte(requestLine + "\r\nHost: localhost\r\n\r\n"))
	require.NoError(t, err)
	response, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(response)
}

func TestCallbackListener_DeliversSessionToken(t *testing.T) {
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcomes, done := runListener(ctx, addr)
	response := exchange(t, addr, "GET /auth/callback?token=tok123 HTTP/1.1")

	assert.Contains(t, response, "HTTP/1.1 200 OK")
	assert.Contains(t, response, "Login complete")

	select {
	case outcome := <-outcomes:
		assert.Equal(t, OutcomeSession, outcome.Kind)
		assert.Equal(t, "tok123", outcome.Token)
	case <-time.After(time.Second):
		t.Fatal("no outcome delivered")
	}
	<-done
}

func TestCallbackListener_DeliversTwoFactorToken(t *testing.T) {
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcomes, done := runListener(ctx, addr)
	_ = exchange(t, addr, "GET /auth/callback?2fa_token=pending HTTP/1.1")

	select {
	case outcome := <-outcomes:
		assert.Equal(t, OutcomeTwoFactor, outcome.Kind)
		assert.Equal(t, "pending", outcome.Token)
	case <-time.After(time.Second):
		t.Fatal("no outcome delivered")
	}
	<-done
}

func TestCallbackListener_MalformedCallbackStillServesPage(t *testing.T) {
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcomes, done := runListener(ctx, addr)
	response := exchange(t, addr, "GET /auth/callback?state=1 HTTP/1.1")

	// Browser still sees the friendly page even though nothing was extracted.
	assert.Contains(t, response, "HTTP/1.1 200 OK")
	assert.Contains(t, response, "Login complete")

	<-done
	select {
	case outcome := <-outcomes:
		t.Fatalf("unexpected outcome: %+v", outcome)
	default:
	}
}

func TestCallbackListener_PortConflict(t *testing.T) {
	addr := freeAddr(t)
	holder, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	defer func() {
		_ = holder.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcomes, done := runListener(ctx, addr)

	select {
	case outcome := <-outcomes:
		assert.Equal(t, OutcomeError, outcome.Kind)
		assert.Equal(t, reasonPortInUse, outcome.Reason)
	case <-time.After(time.Second):
		t.Fatal("expected immediate port conflict outcome")
	}
	<-done
}

func TestCallbackListener_CancelReleasesPort(t *testing.T) {
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())

	_, done := runListener(ctx, addr)
	// Wait until the listener holds the port, without connecting to it.
	require.Eventually(t, func() bool {
		probe, err := net.Listen("tcp", addr)
		if err != nil {
			return true
		}
		_ = probe.Close()
		return false
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}

	// Port must be immediately bindable again; cancelling twice is a no-op.
	cancel()
	rebound, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	_ = rebound.Close()
}

func TestCallbackListener_SequentialAttempts(t *testing.T) {
	addr := freeAddr(t)
	for _, token := range []string{"first", "second"} {
		ctx, cancel := context.WithCancel(context.Background())
		outcomes, done := runListener(ctx, addr)
		_ = exchange(t, addr, "GET /auth/callback?token="+token+" HTTP/1.1")
		outcome := <-outcomes
		assert.Equal(t, token, outcome.Token)
		<-done
		cancel()
	}
}
