package auth

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clipshare/clipctl/pkg/client"
)

type fakeStore struct {
	token string
	saves int
}

func (s *fakeStore) Save(token string) error {
	s.token = token
	s.saves++
	return nil
}

func (s *fakeStore) Load() (string, error) {
	if s.token == "" {
		return "", ErrNoSession
	}
	return s.token, nil
}

func (s *fakeStore) Delete() error {
	if s.token == "" {
		return ErrNoSession
	}
	s.token = ""
	return nil
}

type browserFunc func(url string) error

func (f browserFunc) Open(url string) error { return f(url) }

// fakePrompter replays queued answers.
type fakePrompter struct {
	inputs    []string
	passwords []string
	confirms  []bool
	selects   []string
}

func (p *fakePrompter) Input(string) (string, error) {
	if len(p.inputs) == 0 {
		return "", fmt.Errorf("unexpected input prompt")
	}
	value := p.inputs[0]
	p.inputs = p.inputs[1:]
	return value, nil
}

func (p *fakePrompter) Password(string) (string, error) {
	if len(p.passwords) == 0 {
		return "", fmt.Errorf("unexpected password prompt")
	}
	value := p.passwords[0]
	p.passwords = p.passwords[1:]
	return value, nil
}

func (p *fakePrompter) Confirm(string, bool) (bool, error) {
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm prompt")
	}
	value := p.confirms[0]
	p.confirms = p.confirms[1:]
	return value, nil
}

func (p *fakePrompter) Select(string, []string) (string, error) {
	if len(p.selects) == 0 {
		return "", fmt.Errorf("unexpected select prompt")
	}
	value := p.selects[0]
	p.selects = p.selects[1:]
	return value, nil
}

// freeAddr reserves a loopback port and releases it for the test to bind.
func freeAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

func newTestAPI(t *testing.T, serverURL string) *client.Client {
	t.Helper()
	api, err := client.New(client.WithServer(serverURL))
	require.NoError(t, err)
	return api
}

// dialCallback connects to the listener, retrying until it is bound.
func dialCallback(t *testing.T, addr string) net.Conn {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			return conn
		}
		if time.Now().After(deadline) {
			t.Fatalf("listener never came up on %s: %v", addr, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
