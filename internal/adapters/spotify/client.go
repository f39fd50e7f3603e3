package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/ewilliams-labs/soundalike/internal/config"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
	"github.com/ewilliams-labs/soundalike/internal/logging"
	"github.com/ewilliams-labs/soundalike/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.spotify.com/v1"
	breakerName    = "spotify-api"
)

// ErrNotFound is matched by StatusError for 404 responses.
var ErrNotFound = errors.New("spotify adapter: not found")

// StatusError reports a non-200 response from an endpoint.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify adapter: %s status %d", e.Endpoint, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client is an HTTP client for the Spotify Web API implementing ports.Catalog.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	baseBackoff    time.Duration
	requestTimeout time.Duration
	limiter        *rate.Limiter
	breaker        *gobreaker.CircuitBreaker[*http.Response]
	log            zerolog.Logger
}

// compile-time interface assertion
var _ ports.Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithRetry sets the attempt budget and the first backoff step.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// WithRateLimit caps outgoing requests. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) { c.requestTimeout = d }
}

// NewClient constructs a Spotify client around an already authenticated httpClient.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     DefaultBaseURL,
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
		log:         logging.Component("spotify"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(c.log)
	return c
}

// NewFromConfig builds a client that authenticates with the client-credentials flow.
// ctx scopes the token fetches, not individual API calls.
func NewFromConfig(ctx context.Context, cfg config.SpotifyConfig) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	return NewClient(cc.Client(ctx),
		WithBaseURL(cfg.BaseURL),
		WithRetry(cfg.MaxRetries, cfg.RetryBackoff),
		WithRateLimit(cfg.RequestsPerSecond, cfg.Burst),
		WithRequestTimeout(cfg.RequestTimeout),
	)
}

func newBreaker(log zerolog.Logger) *gobreaker.CircuitBreaker[*http.Response] {
	metrics.CatalogBreakerState.Set(0)
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CatalogBreakerState.Set(stateToFloat(to))
		},
		// caller cancellations say nothing about the API's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// requestOutcome classifies a finished call; breaker rejections never reach the API.
func requestOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

// getJSON issues a GET for path and decodes a 200 response into out.
// Any other status is returned as a *StatusError.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) (err error) {
	defer func() { metrics.RecordCatalogOutcome(endpoint, requestOutcome(err)) }()

	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("spotify adapter: failed to create %s request: %w", endpoint, err)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.doRequestWithRetry(req)
	})
	if err != nil {
		return fmt.Errorf("spotify adapter: %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("spotify adapter: %s decode error: %w", endpoint, err)
	}
	return nil
}
