package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/giftshop/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetch results reported to metrics.
const (
	FetchResultSuccess = "success"
	FetchResultRetry   = "retry"
	FetchResultFailure = "failure"
)

// ClientConfig holds feed client settings.
type ClientConfig struct {
	Source      string        // http(s) URL or local file path
	MaxAttempts int           // Total attempts including the first
	RetryUnit   time.Duration // Back-off before attempt n+1 is n*RetryUnit
	Timeout     time.Duration
}

// Client fetches the raw product feed with bounded retries.
type Client struct {
	httpClient  *http.Client
	source      string
	maxAttempts int
	retryUnit   time.Duration
	rateLimiter *rate.Limiter
	metrics     domain.CatalogMetrics
	logger      *zap.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new feed client
func NewClient(cfg ClientConfig, metrics domain.CatalogMetrics, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	unit := cfg.RetryUnit
	if unit <= 0 {
		unit = time.Second
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		source:      cfg.Source,
		maxAttempts: attempts,
		retryUnit:   unit,
		// A reload button should not be able to hammer the origin
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		metrics:     metrics,
		logger:      logger,
		sleep:       sleepContext,
	}
}

// linearBackoff returns the delay after a failed attempt: one unit after
// attempt 1, two after attempt 2, and so on.
func linearBackoff(attempt int, unit time.Duration) time.Duration {
	return time.Duration(attempt) * unit
}

// Fetch returns the feed text. Transport errors and non-200 statuses are
// retried; after the last attempt the error wraps domain.ErrFeedUnavailable.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	log := c.logger.With(zap.String("source", c.source))

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limiter: %v", domain.ErrFeedUnavailable, err)
		}

		text, err := c.fetchOnce(ctx)
		if err == nil {
			c.observe(FetchResultSuccess)
			log.Debug("feed fetched", zap.Int("attempt", attempt), zap.Int("bytes", len(text)))
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}

		if attempt < c.maxAttempts {
			c.observe(FetchResultRetry)
			delay := linearBackoff(attempt, c.retryUnit)
			log.Warn("feed fetch failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
				zap.Error(err))
			if err := c.sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}
	}

	c.observe(FetchResultFailure)
	log.Error("feed fetch failed", zap.Int("attempts", c.maxAttempts), zap.Error(lastErr))
	return "", fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) (string, error) {
	if !isRemote(c.source) {
		data, err := os.ReadFile(c.source)
		if err != nil {
			return "", fmt.Errorf("read feed file: %w", err)
		}
		return string(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Storefront/1.0")
	req.Header.Set("Accept", "text/csv, text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed status %d", resp.StatusCode)
	}

	return string(body), nil
}

func (c *Client) observe(result string) {
	if c.metrics != nil {
		c.metrics.ObserveFetch(result)
	}
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
