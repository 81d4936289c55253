package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"beyt_client/api"
	"beyt_client/models"
)

var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// GoogleAuth exchanges a Google authorization code for an ID token and hands
// it to the backend, which answers with its own bearer token.
type GoogleAuth struct {
	oauth   *oauth2.Config
	client  *api.Client
	session *Session
}

func NewGoogleAuth(clientID, clientSecret, redirectURL string, client *api.Client, session *Session) *GoogleAuth {
	return &GoogleAuth{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleEndpoint,
		},
		client:  client,
		session: session,
	}
}

// AuthURL is where the user's browser goes to grant access.
func (g *GoogleAuth) AuthURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Login completes the flow: authorization code -> Google ID token ->
// backend session token.
func (g *GoogleAuth) Login(ctx context.Context, code string) (*models.User, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google exchange: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return nil, fmt.Errorf("google exchange: no id_token in response")
	}

	var resp models.TokenResponse
	err = g.client.Get(ctx, api.RouteGoogleAppCallback, map[string]string{"code": idToken}, &resp)
	if err != nil {
		return nil, fmt.Errorf("google callback: %w", err)
	}

	if err := g.session.Login(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}
