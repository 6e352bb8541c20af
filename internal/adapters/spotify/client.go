// Package spotify implements the audio-feature lookup against the Spotify Web API.
package spotify

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

// DefaultBaseURL is the public Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	limiter     *rate.Limiter
	log         *zap.Logger
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.AudioFeatureProvider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRetry sets the attempt count and the base backoff between attempts.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the client logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log.Named("spotify") }
}

// NewClient constructs a new Spotify client. httpClient is expected to carry
// authentication, see NewHTTPClient.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		limiter:     rate.NewLimiter(rate.Inf, 1),
		log:         zap.NewNop(),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
