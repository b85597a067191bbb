package api

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Tiliavir/trivial-trip-planner/internal/config"
)

// newHTTPClient returns the HTTP client used for API calls. With a static
// access token or client-credentials settings, requests carry a bearer
// token; otherwise a plain client with the request timeout is returned.
func newHTTPClient(ctx context.Context, cfg config.APIConfig, timeout time.Duration) *http.Client {
	base := &http.Client{Timeout: timeout}

	ts := tokenSource(ctx, cfg, base)
	if ts == nil {
		return base
	}

	authed := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	authed.Timeout = timeout
	return authed
}

// tokenSource picks client credentials over a static token. It returns nil
// when no auth is configured.
func tokenSource(ctx context.Context, cfg config.APIConfig, base *http.Client) oauth2.TokenSource {
	if cfg.OAuth.TokenURL != "" && cfg.OAuth.ClientID != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
			Scopes:       cfg.OAuth.Scopes,
		}
		return cc.TokenSource(context.WithValue(ctx, oauth2.HTTPClient, base))
	}
	if cfg.AccessToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		})
	}
	return nil
}
