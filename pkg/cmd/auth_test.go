package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCommand_UnknownBrowserProvider(t *testing.T) {
	_, err := execute(t, nil, "login", "--browser", "myspace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown provider "myspace"`)
	assert.Contains(t, err.Error(), "github, google, discord")
}

func TestLoginCommand_NonInteractiveRequiresBrowserFlag(t *testing.T) {
	_, err := execute(t, nil, "login", "--non-interactive")
	require.Error(t, err)
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	out, err := execute(t, nil, "logout", "--token-storage", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestIsOAuthProvider(t *testing.T) {
	assert.True(t, isOAuthProvider("github"))
	assert.True(t, isOAuthProvider("google"))
	assert.True(t, isOAuthProvider("discord"))
	assert.False(t, isOAuthProvider("GitHub"))
	assert.False(t, isOAuthProvider("twitter"))
}
