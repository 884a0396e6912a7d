package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque encoded bytes so memory and redis backends behave alike.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FeedSource fetches the raw product feed text.
type FeedSource interface {
	Fetch(ctx context.Context) (string, error)
}

// CatalogMetrics receives load and search observations.
type CatalogMetrics interface {
	ObserveFetch(result string)
	ObserveLoad(products, dropped int)
	ObserveSearch(d time.Duration, results int)
}
