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

func TestTwoFactorEnroll_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/2fa/setup":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"secret":         "JBSWY3DPEHPK3PXP",
				"qr_code_base64": "iVBORw0KGgo=",
			})
		case "/auth/2fa/verify":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "JBSWY3DPEHPK3PXP", body["secret"])
			require.Equal(t, "123456", body["code"])
			_ = json.NewEncoder(w).Encode(map[string]any{
				"recovery_codes": []string{"aaaa-1111", "bbbb-2222"},
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	out := &bytes.Buffer{}
	a := &Authenticator{
		API:    newTestAPI(t, server.URL),
		Store:  &fakeStore{},
		Out:    out,
		Prompt: &fakePrompter{inputs: []string{"123456"}},
	}

	require.NoError(t, a.TwoFactorEnroll(context.Background()))
	assert.Contains(t, out.String(), "JBSWY3DPEHPK3PXP")
	assert.Contains(t, out.String(), "2FA enabled successfully!")
	assert.Contains(t, out.String(), "1. aaaa-1111")
	assert.Contains(t, out.String(), "2. bbbb-2222")
}

func TestTwoFactorEnroll_VerifyFailureShowsNoRecoveryCodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/2fa/setup":
			_ = json.NewEncoder(w).Encode(map[string]string{"secret": "JBSWY3DPEHPK3PXP"})
		case "/auth/2fa/verify":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "code mismatch"})
		}
	}))
	defer server.Close()

	out := &bytes.Buffer{}
	a := &Authenticator{
		API:    newTestAPI(t, server.URL),
		Store:  &fakeStore{},
		Out:    out,
		Prompt: &fakePrompter{inputs: []string{"999999"}},
	}

	err := a.TwoFactorEnroll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code mismatch")
	assert.NotContains(t, out.String(), "recovery codes")
	assert.NotContains(t, out.String(), "enabled successfully")
}

func TestTwoFactorEnroll_EmptyCodeAbortsBeforeVerify(t *testing.T) {
	var verifyCalled bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/2fa/setup":
			_ = json.NewEncoder(w).Encode(map[string]string{"secret": "JBSWY3DPEHPK3PXP"})
		case "/auth/2fa/verify":
			verifyCalled = true
		}
	}))
	defer server.Close()

	a := &Authenticator{
		API:    newTestAPI(t, server.URL),
		Store:  &fakeStore{},
		Out:    &bytes.Buffer{},
		Prompt: &fakePrompter{inputs: []string{""}},
	}

	err := a.TwoFactorEnroll(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verifyCalled)
}

func TestTwoFactorEnroll_MissingSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	a := &Authenticator{
		API:   newTestAPI(t, server.URL),
		Store: &fakeStore{},
		Out:   &bytes.Buffer{},
	}

	err := a.TwoFactorEnroll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no 2FA secret")
}
