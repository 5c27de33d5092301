// Package discovery fetches merchant UCP profiles from their well-known
// location and checks them against the discovery profile schema.
package discovery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/commercekit/ucp-mcp/internal/schema"
	"github.com/commercekit/ucp-mcp/pkg/observability"
)

// WellKnownPath is where merchants publish their UCP profile.
const WellKnownPath = "/.well-known/ucp"

// ProfileSchemaName is the schema every fetched profile is checked against.
const ProfileSchemaName = "discovery/profile_schema"

// StatusError reports a non-success HTTP status from the merchant.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("discovery endpoint returned status %d", e.Code)
}

// Result carries the fetched profile together with its validation outcome.
// The profile is always returned as received, even when invalid; acting on
// a mismatch is the caller's decision.
type Result struct {
	URL        string        `json:"url"`
	Profile    any           `json:"profile"`
	Validation schema.Result `json:"validation"`
}

// Options configures a discovery client.
type Options struct {
	// Timeout bounds a single profile fetch.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that trips
	// the circuit breaker.
	FailureThreshold int
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}

// Client performs merchant discovery fetches behind circuit breakers.
// Breakers are keyed by merchant host, so a failing merchant cannot flag
// discovery for unrelated ones.
type Client struct {
	httpClient *http.Client
	validator  *schema.Validator
	timeout    time.Duration
	threshold  uint32
	logger     *slog.Logger
	metrics    observability.Metrics

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a discovery client. A nil logger falls back to the
// default slog logger; a nil metrics collector records nothing.
func NewClient(validator *schema.Validator, opts Options, logger *slog.Logger, metrics observability.Metrics) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = DefaultOptions().FailureThreshold
	}

	return &Client{
		httpClient: &http.Client{},
		validator:  validator,
		timeout:    opts.Timeout,
		threshold:  uint32(opts.FailureThreshold),
		logger:     logger,
		metrics:    metrics,
		breakers:   make(map[string]*gobreaker.CircuitBreaker[[]byte]),
	}
}

// breakerFor returns the circuit breaker for a merchant host, creating it
// on first use.
func (c *Client) breakerFor(host string) *gobreaker.CircuitBreaker[[]byte] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if breaker, exists := c.breakers[host]; exists {
		return breaker
	}

	settings := gobreaker.Settings{
		Name:    host,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info("circuit breaker state changed",
				"host", name,
				"from", from.String(),
				"to", to.String(),
			)
			c.metrics.Counter(observability.MetricDiscoveryBreaker, 1,
				observability.T("state", to.String()))
		},
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](settings)
	c.breakers[host] = breaker
	return breaker
}

// Discover fetches <merchantURL>/.well-known/ucp, parses the body as JSON
// and validates it against the discovery profile schema. All failure modes
// are returned as plain errors for the caller to flag; nothing panics or
// retries.
func (c *Client) Discover(ctx context.Context, merchantURL string) (*Result, error) {
	base, err := url.Parse(merchantURL)
	if err != nil || !base.IsAbs() || base.Host == "" ||
		(base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("invalid merchant URL %q", merchantURL)
	}

	endpoint := strings.TrimRight(base.String(), "/") + WellKnownPath

	start := time.Now()
	c.metrics.Counter(observability.MetricDiscoveryRequests, 1)

	body, err := c.breakerFor(base.Host).Execute(func() ([]byte, error) {
		return c.fetch(ctx, endpoint)
	})
	if err != nil {
		c.metrics.Counter(observability.MetricDiscoveryErrors, 1)
		c.logger.Warn("merchant discovery failed", "url", endpoint, "error", err)
		return nil, err
	}
	c.metrics.Timing(observability.MetricDiscoveryDuration, time.Since(start))

	var profile any
	if err := json.Unmarshal(body, &profile); err != nil {
		c.metrics.Counter(observability.MetricDiscoveryErrors, 1)
		return nil, fmt.Errorf("merchant profile is not valid JSON: %w", err)
	}

	validation := c.validator.Validate(ctx, ProfileSchemaName, profile)
	c.logger.Info("merchant discovered",
		"url", endpoint,
		"valid", validation.Valid,
	)

	return &Result{
		URL:        endpoint,
		Profile:    profile,
		Validation: validation,
	}, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build discovery request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch merchant profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}
