package spotify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenURL is the accounts service token endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// ErrNoCredentials is returned when neither a token nor client credentials are set.
var ErrNoCredentials = errors.New("spotify adapter: no credentials configured")

// Credentials selects how requests are authenticated. A static AccessToken wins
// over client credentials.
type Credentials struct {
	AccessToken  string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// Configured reports whether any credentials are present.
func (c Credentials) Configured() bool {
	return c.AccessToken != "" || (c.ClientID != "" && c.ClientSecret != "")
}

// NewHTTPClient returns an http.Client that attaches a bearer token to every
// request. Client-credential tokens are fetched lazily and refreshed on expiry.
func NewHTTPClient(ctx context.Context, creds Credentials, timeout time.Duration) (*http.Client, error) {
	var src oauth2.TokenSource
	switch {
	case creds.AccessToken != "":
		src = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken, TokenType: "Bearer"})
	case creds.ClientID != "" && creds.ClientSecret != "":
		tokenURL := creds.TokenURL
		if tokenURL == "" {
			tokenURL = DefaultTokenURL
		}
		cfg := &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     tokenURL,
		}
		src = cfg.TokenSource(ctx)
	default:
		return nil, ErrNoCredentials
	}

	client := oauth2.NewClient(ctx, src)
	client.Timeout = timeout
	return client, nil
}
