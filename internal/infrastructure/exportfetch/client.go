// Package exportfetch downloads season export documents from remote URLs.
package exportfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gamehubfc/managerhub/internal/platform/logging"
	"github.com/gamehubfc/managerhub/internal/platform/resilience"
	"github.com/gamehubfc/managerhub/internal/usecase"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultMaxBytes = 16 << 20
)

var errTransient = crerr.New("export host transient failure")

type Config struct {
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	MaxBytes       int64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	maxRetries int
	maxBytes   int64
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.Group[[]byte]
	backoff    func(attempt int) time.Duration
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	return &Client{
		httpClient: httpClient,
		maxRetries: max(cfg.MaxRetries, 0),
		maxBytes:   maxBytes,
		logger:     logger.Named("exportfetch"),
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * 500 * time.Millisecond
		},
	}
}

// Fetch downloads rawURL. Concurrent fetches of the same URL share one
// request.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "export fetch circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: export host is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	raw, err, _ := c.flight.Do(target, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, target)
		switch {
		case reqErr == nil:
			c.breaker.RecordSuccess()
		case crerr.Is(reqErr, errTransient):
			c.breaker.RecordFailure()
		default:
			c.breaker.RecordSuccess()
		}
		return body, reqErr
	})
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), raw...), nil
}

func (c *Client) executeRequest(ctx context.Context, target string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		body, retry, err := c.do(ctx, target)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "export fetch failed", "url", redactURL(target), "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, target string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "text/html, */*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		statusErr := crerr.Newf("export host status=%d", resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			return nil, true, crerr.Mark(statusErr, errTransient)
		}
		return nil, false, statusErr
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	n, err := buf.ReadFrom(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, true, crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}
	if n > c.maxBytes {
		return nil, false, fmt.Errorf("%w: export exceeds %d bytes", usecase.ErrInvalidInput, c.maxBytes)
	}
	return append([]byte(nil), buf.B...), false, nil
}

func validateURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: invalid source url: %v", usecase.ErrInvalidInput, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: source url must be http or https", usecase.ErrInvalidInput)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: source url host is required", usecase.ErrInvalidInput)
	}
	return parsed.String(), nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// redactURL drops query strings, which often carry share tokens.
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	parsed.RawQuery = ""
	parsed.User = nil
	return parsed.String()
}
