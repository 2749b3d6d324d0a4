package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoFactorChallenge_EmptyCodeNeverHitsNetwork(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	a := &Authenticator{
		API:    newTestAPI(t, server.URL),
		Store:  &fakeStore{},
		Out:    &bytes.Buffer{},
		Prompt: &fakePrompter{inputs: []string{""}},
	}

	err := a.TwoFactorChallenge(context.Background(), "challenge")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "2FA code", verr.Field)
	assert.Zero(t, requests)
}

func TestTwoFactorChallenge_ServerRejectionSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or expired code"})
	}))
	defer server.Close()

	store := &fakeStore{}
	a := &Authenticator{
		API:    newTestAPI(t, server.URL),
		Store:  store,
		Out:    &bytes.Buffer{},
		Prompt: &fakePrompter{inputs: []string{"000000"}},
	}

	err := a.TwoFactorChallenge(context.Background(), "challenge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two-factor authentication failed")
	assert.Contains(t, err.Error(), "invalid or expired code")
	assert.Zero(t, store.saves, "a failed challenge must not store a session")
}

func TestTwoFactorChallenge_RecoveryCodeAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "abcd-efgh-ijkl", body["code"], "recovery codes go through the same field")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "sess-rec"})
	}))
	defer server.Close()

	store := &fakeStore{}
	a := &Authenticator{
		API:    newTestAPI(t, server.URL),
		Store:  store,
		Out:    &bytes.Buffer{},
		Prompt: &fakePrompter{inputs: []string{"abcd-efgh-ijkl"}},
	}

	require.NoError(t, a.TwoFactorChallenge(context.Background(), "challenge"))
	assert.Equal(t, "sess-rec", store.token)
}

func TestTwoFactorChallenge_EmptyTokenResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	store := &fakeStore{}
	a := &Authenticator{
		API:    newTestAPI(t, server.URL),
		Store:  store,
		Out:    &bytes.Buffer{},
		Prompt: &fakePrompter{inputs: []string{"123456"}},
	}

	err := a.TwoFactorChallenge(context.Background(), "challenge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response")
	assert.Zero(t, store.saves)
}
