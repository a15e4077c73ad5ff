package nuvei

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
)

// Transport defaults from the original integration.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxRedirects = 3
)

// Client performs the single outbound gateway call. It never retries:
// a transport failure is surfaced immediately and the caller decides
// whether the customer may try again. A circuit breaker fails fast when
// the endpoint is known to be down, which is still not a retry.
type Client struct {
	httpClient     *http.Client
	breaker        *gobreaker.CircuitBreaker[[]byte]
	observeLatency func(time.Duration)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLatencyObserver registers a callback receiving the round-trip time
// of each call that actually reaches the wire. Fail-fast rejections from
// an open breaker are not observed.
func WithLatencyObserver(fn func(time.Duration)) ClientOption {
	return func(c *Client) { c.observeLatency = fn }
}

// NewClient creates a gateway client with bounded timeout and redirect count.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= DefaultMaxRedirects {
					return fmt.Errorf("stopped after %d redirects", DefaultMaxRedirects)
				}
				return nil
			},
		},
	}
	for _, o := range opts {
		o(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "nuvei-gateway",
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
	})

	return c
}

// BreakerState exposes the circuit breaker state for metrics.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// Submit serializes req and POSTs it to endpoint, returning the raw
// response body. Any failure to reach the gateway or read its answer is
// wrapped in ErrGatewayUnreachable.
func (c *Client) Submit(ctx context.Context, endpoint string, req *Request) ([]byte, error) {
	payload, err := req.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		start := time.Now()
		b, postErr := c.post(ctx, endpoint, payload)
		if c.observeLatency != nil {
			c.observeLatency(time.Since(start))
		}
		return b, postErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnreachable, err)
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/xml")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// The gateway reports protocol-level problems in the body regardless
	// of status code, so a readable body always goes to the classifier.
	if resp.StatusCode >= http.StatusBadRequest && len(body) == 0 {
		return nil, fmt.Errorf("gateway returned status %d with empty body", resp.StatusCode)
	}
	return body, nil
}
