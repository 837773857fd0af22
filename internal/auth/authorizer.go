// Package auth runs the three-legged OAuth1 handshake against Tumblr.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/abdulachik/yearsago/internal/prompt"
	"github.com/dghubble/oauth1"
	"github.com/dghubble/oauth1/tumblr"
)

// Authorizer obtains an access token pair by having the user approve the
// application in a browser and paste back the redirect URL.
type Authorizer struct {
	endpoint    oauth1.Endpoint
	callbackURL string
	prompter    *prompt.Prompter
}

// Config holds configuration for the authorizer.
type Config struct {
	// Endpoint defaults to Tumblr's request_token/authorize/access_token URLs
	Endpoint    *oauth1.Endpoint
	CallbackURL string
	Prompter    *prompt.Prompter
}

// New creates a new authorizer.
func New(cfg Config) *Authorizer {
	endpoint := tumblr.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}

	return &Authorizer{
		endpoint:    endpoint,
		callbackURL: cfg.CallbackURL,
		prompter:    cfg.Prompter,
	}
}

// Obtain performs the handshake for the given consumer credentials and
// returns the permanent access token and secret.
func (a *Authorizer) Obtain(ctx context.Context, consumerKey, consumerSecret string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	config := &oauth1.Config{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		CallbackURL:    a.callbackURL,
		Endpoint:       a.endpoint,
	}

	// Step 1: temporary request token
	requestToken, requestSecret, err := config.RequestToken()
	if err != nil {
		return "", "", fmt.Errorf("fetch request token: %w", err)
	}
	slog.Debug("obtained request token")

	// Step 2: user approves in a browser
	authorizationURL, err := config.AuthorizationURL(requestToken)
	if err != nil {
		return "", "", fmt.Errorf("build authorization url: %w", err)
	}

	a.prompter.Printf("\nPlease go here and authorize:\n%s\n", authorizationURL.String())
	redirect, err := a.prompter.Ask("Allow then paste the full redirect URL here:\n")
	if err != nil {
		return "", "", fmt.Errorf("read redirect url: %w", err)
	}

	verifier, err := parseVerifier(strings.TrimSpace(redirect), requestToken)
	if err != nil {
		return "", "", err
	}

	// Step 3: exchange for the permanent token
	accessToken, accessSecret, err := config.AccessToken(requestToken, requestSecret, verifier)
	if err != nil {
		return "", "", fmt.Errorf("fetch access token: %w", err)
	}

	slog.Info("authorized with Tumblr")
	return accessToken, accessSecret, nil
}

// parseVerifier extracts the oauth_verifier from a pasted redirect URL and
// checks that it belongs to the request token that started the flow.
func parseVerifier(redirect, requestToken string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, redirect, nil)
	if err != nil {
		return "", fmt.Errorf("parse redirect url: %w", err)
	}

	token, verifier, err := oauth1.ParseAuthorizationCallback(req)
	if err != nil {
		return "", fmt.Errorf("parse authorization response: %w", err)
	}

	if token != requestToken {
		return "", fmt.Errorf("redirect was issued for a different request token")
	}

	return verifier, nil
}
