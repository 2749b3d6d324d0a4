package cmd

import (
	"errors"
	"fmt"

	"github.com/clipshare/clipctl/pkg/auth"
	"github.com/clipshare/clipctl/pkg/client"
	"github.com/clipshare/clipctl/pkg/config"
)

func sessionStore(rt *runtimeState) (auth.SessionStore, error) {
	return auth.NewStore(rt.TokenStorage(), config.DefaultSessionPath())
}

// buildClient returns an unauthenticated API client for the login endpoints.
func buildClient(rt *runtimeState) (*client.Client, error) {
	return client.New(
		client.WithServer(rt.APIURL()),
		client.WithUserAgent("clipctl"),
	)
}

// buildAuthClient returns a client carrying the stored session token.
func buildAuthClient(rt *runtimeState) (*client.Client, error) {
	store, err := sessionStore(rt)
	if err != nil {
		return nil, err
	}
	token, err := store.Load()
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			return nil, fmt.Errorf("you are not logged in, run 'clipctl login' first")
		}
		return nil, err
	}
	return client.New(
		client.WithServer(rt.APIURL()),
		client.WithToken(token),
		client.WithUserAgent("clipctl"),
	)
}

func buildAuthenticator(rt *runtimeState, api *client.Client) (*auth.Authenticator, error) {
	store, err := sessionStore(rt)
	if err != nil {
		return nil, err
	}
	return &auth.Authenticator{
		API:     api,
		Store:   store,
		Browser: auth.ExecBrowser{},
		Prompt:  rt.Prompter(),
		Out:     rt.Writer(),
		Log:     rt.Logger(),
	}, nil
}
