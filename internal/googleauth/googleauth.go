// Package googleauth wraps the OAuth configuration shared by the login flow
// and the Google API clients.
package googleauth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes requested at login: calendar and tasks for the assistant actions,
// userinfo so the callback can key the stored credential by Google ID.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/tasks",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Config is the process-wide OAuth client configuration.
type Config struct {
	oauth *oauth2.Config
}

func NewConfig(clientID, clientSecret, redirectURL string) *Config {
	return &Config{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the consent page URL. Offline access plus forced
// consent so Google always issues a refresh token.
func (c *Config) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for tokens.
func (c *Config) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.oauth.Exchange(ctx, code)
}

// TokenSource returns a refreshing token source for a stored credential.
func (c *Config) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return c.oauth.TokenSource(ctx, token)
}
