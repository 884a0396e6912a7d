package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCatalogMetrics_ObserveFetch(t *testing.T) {
	m := NewCatalogMetrics(nil)

	m.ObserveFetch("retry")
	m.ObserveFetch("retry")
	m.ObserveFetch("success")

	if got := testutil.ToFloat64(m.fetchAttempts.WithLabelValues("retry")); got != 2 {
		t.Fatalf("expected 2 retries, got %v", got)
	}
	if got := testutil.ToFloat64(m.fetchAttempts.WithLabelValues("success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
}

func TestCatalogMetrics_ObserveLoad(t *testing.T) {
	m := NewCatalogMetrics(nil)

	m.ObserveLoad(120, 3)
	m.ObserveLoad(118, 2)

	if got := testutil.ToFloat64(m.productsLoaded); got != 118 {
		t.Fatalf("expected gauge to track latest load, got %v", got)
	}
	if got := testutil.ToFloat64(m.rowsDropped); got != 5 {
		t.Fatalf("expected 5 dropped rows, got %v", got)
	}
	if got := testutil.ToFloat64(m.reloads); got != 2 {
		t.Fatalf("expected 2 reloads, got %v", got)
	}
}

func TestCatalogMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCatalogMetrics(reg)

	m.ObserveFetch("success")
	m.ObserveLoad(10, 0)
	m.ObserveSearch(2*time.Millisecond, 4)

	if count := testutil.CollectAndCount(m.searchDuration); count != 1 {
		t.Fatalf("expected one search histogram, got %d", count)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 6 {
		t.Fatalf("expected 6 metric families, got %d", len(families))
	}
}

func TestCatalogMetrics_NilSafe(t *testing.T) {
	var m *CatalogMetrics
	m.ObserveFetch("failure")
	m.ObserveLoad(1, 1)
	m.ObserveSearch(time.Millisecond, 1)
}
