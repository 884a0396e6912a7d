package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giftshop/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	fetches []string
}

func (m *recordingMetrics) ObserveFetch(result string) { m.fetches = append(m.fetches, result) }
func (m *recordingMetrics) ObserveLoad(products, dropped int) {}
func (m *recordingMetrics) ObserveSearch(d time.Duration, results int) {}

// newTestClient returns a client whose back-off sleeps are recorded instead of waited.
func newTestClient(source string, attempts int, metrics *recordingMetrics) (*Client, *[]time.Duration) {
	client := NewClient(ClientConfig{
		Source:      source,
		MaxAttempts: attempts,
		RetryUnit:   time.Second,
	}, metrics, nil)

	var slept []time.Duration
	client.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return client, &slept
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(ClientConfig{Source: "products.csv"}, nil, nil)

	assert.Equal(t, 3, client.maxAttempts)
	assert.Equal(t, time.Second, client.retryUnit)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.rateLimiter)
	assert.NotNil(t, client.logger)
}

func TestLinearBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, linearBackoff(tt.attempt, 500*time.Millisecond))
	}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.csv", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,name\nA,Rose"))
	}))
	defer server.Close()

	metrics := &recordingMetrics{}
	client, slept := newTestClient(server.URL+"/products.csv", 3, metrics)

	text, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "id,name\nA,Rose", text)
	assert.Empty(t, *slept)
	assert.Equal(t, []string{FetchResultSuccess}, metrics.fetches)
}

func TestFetch_RetriesWithLinearBackoff(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("id,name"))
	}))
	defer server.Close()

	metrics := &recordingMetrics{}
	client, slept := newTestClient(server.URL, 3, metrics)

	text, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "id,name", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *slept)
	assert.Equal(t, []string{FetchResultRetry, FetchResultRetry, FetchResultSuccess}, metrics.fetches)
}

func TestFetch_FailsAfterMaxAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	metrics := &recordingMetrics{}
	client, slept := newTestClient(server.URL, 2, metrics)

	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFeedUnavailable))
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Len(t, *slept, 1)
	assert.Equal(t, FetchResultFailure, metrics.fetches[len(metrics.fetches)-1])
}

func TestFetch_StopsOnCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, 5, &recordingMetrics{})
	ctx, cancel := context.WithCancel(context.Background())
	client.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := client.Fetch(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFeedUnavailable))
}

func TestFetch_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\nA,Rose"), 0o644))

	client, _ := newTestClient(path, 1, &recordingMetrics{})

	text, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "id,name\nA,Rose", text)
}

func TestFetch_MissingLocalFile(t *testing.T) {
	client, slept := newTestClient(filepath.Join(t.TempDir(), "missing.csv"), 2, &recordingMetrics{})

	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFeedUnavailable))
	assert.Len(t, *slept, 1)
}
