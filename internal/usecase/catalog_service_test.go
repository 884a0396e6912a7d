package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/giftshop/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `product_id,name,description,price,variants,image,sameday
PROD-0001,Red Rose Bouquet,A dozen red roses,"₦45,000",,https://img.example/0001-rose.jpg,true
PROD-0002,Giant Teddy Bear,No description,"₦60,000",,https://img.example/0002-teddy.jpg,false
PROD-0003,Chocolate Box,"Assorted
truffles",,"Small – ₦20,000|Large – ₦35,000",,
,Missing Code,Dropped,"₦10,000",,,
PROD-0004,No Price,Dropped,,,,`

// fakeSource serves a fixed feed or error.
type fakeSource struct {
	text string
	err  error
}

func (s *fakeSource) Fetch(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

type fakeMetrics struct {
	loads    int
	dropped  int
	searches int
}

func (m *fakeMetrics) ObserveFetch(result string) {}

func (m *fakeMetrics) ObserveLoad(products, dropped int) {
	m.loads++
	m.dropped = dropped
}

func (m *fakeMetrics) ObserveSearch(d time.Duration, results int) { m.searches++ }

func newLoadedCatalog(t *testing.T) (*CatalogService, *fakeCache) {
	t.Helper()
	cache := newFakeCache()
	svc := NewCatalogService(&fakeSource{text: testFeed}, cache, nil, nil, CatalogServiceConfig{})
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)
	return svc, cache
}

func TestCatalogService_Reload(t *testing.T) {
	metrics := &fakeMetrics{}
	svc := NewCatalogService(&fakeSource{text: testFeed}, nil, metrics, nil, CatalogServiceConfig{})

	snapshot, err := svc.Reload(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot.Generation)
	assert.Equal(t, 2, snapshot.Dropped)
	require.Len(t, snapshot.Products, 3)
	require.Len(t, snapshot.Staff, 3)

	rose := snapshot.Products[0]
	assert.Equal(t, domain.CategoryFlowers, rose.Category)
	assert.True(t, rose.SameDay)

	teddy := snapshot.Products[1]
	assert.Empty(t, teddy.Description, "storefront drops the placeholder")
	assert.Equal(t, "No description", snapshot.Staff[1].Description, "staff keeps the placeholder")

	chocolate := snapshot.Products[2]
	assert.Equal(t, 3, chocolate.ID)
	assert.Equal(t, "Assorted truffles", chocolate.Description)
	assert.Equal(t, "₦20,000", chocolate.Price)
	assert.Equal(t, 20000, chocolate.PriceValue)
	assert.Equal(t, domain.CategoryWineChocolate, chocolate.Category)

	assert.Equal(t, 1, metrics.loads)
	assert.Equal(t, 2, metrics.dropped)
}

func TestCatalogService_ReloadBumpsGeneration(t *testing.T) {
	svc, _ := newLoadedCatalog(t)

	snapshot, err := svc.Reload(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), snapshot.Generation)
}

func TestCatalogService_ReloadFailureKeepsPreviousCatalog(t *testing.T) {
	source := &fakeSource{text: testFeed}
	svc := NewCatalogService(source, nil, nil, nil, CatalogServiceConfig{})
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	source.err = fmt.Errorf("%w: boom", domain.ErrFeedUnavailable)
	_, err = svc.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.Generation)
	assert.Len(t, current.Products, 3)
}

func TestCatalogService_NotLoaded(t *testing.T) {
	svc := NewCatalogService(&fakeSource{}, nil, nil, nil, CatalogServiceConfig{})

	_, err := svc.Current()
	assert.ErrorIs(t, err, domain.ErrCatalogNotLoaded)

	_, _, err = svc.Query(context.Background(), &domain.SearchRequest{})
	assert.ErrorIs(t, err, domain.ErrCatalogNotLoaded)

	_, err = svc.Product(1)
	assert.ErrorIs(t, err, domain.ErrCatalogNotLoaded)
}

func TestCatalogService_Prioritizes(t *testing.T) {
	svc := NewCatalogService(&fakeSource{text: testFeed}, nil, nil, nil, CatalogServiceConfig{
		Prioritizer: PrioritizerConfig{PinnedIDs: []string{"PROD-0003"}, Keywords: []string{"teddy"}},
	})

	snapshot, err := svc.Reload(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"PROD-0003", "PROD-0002", "PROD-0001"}, productIDs(snapshot.Products))
	assert.Equal(t, []string{"PROD-0001", "PROD-0002", "PROD-0003"}, productIDs(snapshot.Staff), "staff list keeps feed order")
}

func TestCatalogService_Query(t *testing.T) {
	svc, cache := newLoadedCatalog(t)
	ctx := context.Background()

	t.Run("empty query returns whole catalog with views", func(t *testing.T) {
		views, total, err := svc.Query(ctx, &domain.SearchRequest{})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, views, 3)
		assert.Equal(t, "🌹", views[0].CategoryEmoji)
		assert.Equal(t, domain.BadgeBudgetFriendly, views[0].Badge)
		assert.Equal(t, domain.BadgeBestValue, views[1].Badge)
	})

	t.Run("search then filter", func(t *testing.T) {
		views, total, err := svc.Query(ctx, &domain.SearchRequest{Query: "rose", Filter: "same-day"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, views, 1)
		assert.Equal(t, "PROD-0001", views[0].ProductID)
	})

	t.Run("paginates", func(t *testing.T) {
		views, total, err := svc.Query(ctx, &domain.SearchRequest{Offset: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, views, 1)
		assert.Equal(t, 2, views[0].ID)
	})

	t.Run("offset past the end", func(t *testing.T) {
		views, total, err := svc.Query(ctx, &domain.SearchRequest{Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, views)
	})

	t.Run("unknown tags", func(t *testing.T) {
		_, _, err := svc.Query(ctx, &domain.SearchRequest{Filter: "cheap"})
		assert.ErrorIs(t, err, domain.ErrUnknownFilter)
		_, _, err = svc.Query(ctx, &domain.SearchRequest{Category: "gadgets"})
		assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	})

	t.Run("invalid request", func(t *testing.T) {
		_, _, err := svc.Query(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		_, _, err = svc.Query(ctx, &domain.SearchRequest{Limit: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("results are cached per generation", func(t *testing.T) {
		_, _, err := svc.Query(ctx, &domain.SearchRequest{Query: "  Teddy  "})
		require.NoError(t, err)

		ok, err := cache.Exists(ctx, "catalog:1:teddy::")
		require.NoError(t, err)
		assert.True(t, ok)

		sets := cache.sets
		views, _, err := svc.Query(ctx, &domain.SearchRequest{Query: "teddy"})
		require.NoError(t, err)
		assert.Equal(t, sets, cache.sets, "second query is served from cache")
		require.Len(t, views, 1)
		assert.Equal(t, "PROD-0002", views[0].ProductID)
	})
}

func TestCatalogService_TrendingAfterSearch(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("product_id,name,description,price,variants,image\n")
	for i := 1; i <= 60; i++ {
		if i <= 50 {
			fmt.Fprintf(&sb, "PROD-%04d,Keepsake %d,Pressed rose,\"₦45,000\",,\n", i, i)
		} else {
			fmt.Fprintf(&sb, "PROD-%04d,Rose Keepsake %d,Boxed,\"₦45,000\",,\n", i, i)
		}
	}
	svc := NewCatalogService(&fakeSource{text: sb.String()}, nil, nil, nil, CatalogServiceConfig{})
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	t.Run("query", func(t *testing.T) {
		views, total, err := svc.Query(context.Background(), &domain.SearchRequest{Query: "rose", Category: "trending"})

		require.NoError(t, err)
		assert.Equal(t, 50, total)
		for _, v := range views {
			assert.LessOrEqual(t, v.ID, 50, "catalog item %d is past the trending cap", v.ID)
		}
	})

	t.Run("search then apply filter", func(t *testing.T) {
		snapshot, err := svc.Current()
		require.NoError(t, err)

		searched := svc.Search(snapshot.Products, "rose")
		require.Len(t, searched, 60)
		require.Equal(t, 51, searched[0].ID)

		result, err := svc.ApplyFilter(searched, "", "trending")

		require.NoError(t, err)
		require.Len(t, result, 50)
		assert.Equal(t, 1, result[0].ID)
		assert.Equal(t, 50, result[49].ID)
	})
}

func TestCatalogService_Product(t *testing.T) {
	svc, _ := newLoadedCatalog(t)

	view, err := svc.Product(2)
	require.NoError(t, err)
	assert.Equal(t, "Giant Teddy Bear", view.Name)
	assert.Equal(t, "🧸", view.CategoryEmoji)

	_, err = svc.Product(99)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestCatalogService_ConcurrentReadsDuringReload(t *testing.T) {
	svc, _ := newLoadedCatalog(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.Reload(ctx)
		}()
		go func() {
			defer wg.Done()
			views, _, err := svc.Query(ctx, &domain.SearchRequest{Query: "rose"})
			assert.NoError(t, err)
			for _, v := range views {
				assert.True(t, strings.Contains(strings.ToLower(v.Name+" "+v.Description), "rose"))
			}
		}()
	}
	wg.Wait()

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(9), current.Generation)
}
