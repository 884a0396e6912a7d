package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/giftshop/storefront/internal/domain"
	"github.com/giftshop/storefront/internal/infrastructure/feed"
	"go.uber.org/zap"
)

var multipleSpacesRegex = regexp.MustCompile(`\s+`)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL    time.Duration
	Prioritizer PrioritizerConfig
}

// catalogState is one loaded snapshot plus its lookup indexes.
type catalogState struct {
	snapshot  domain.CatalogSnapshot
	byID      map[int]int
	staffByID map[int]int
}

// CatalogService owns the loaded catalog and answers queries against it.
// Reload replaces the snapshot wholesale; readers see either the old or the
// new snapshot, never a mix. Concurrent reloads are not serialized: the one
// that finishes last wins.
type CatalogService struct {
	source      domain.FeedSource
	cache       domain.CacheRepository
	metrics     domain.CatalogMetrics
	logger      *zap.Logger
	storefront  *feed.Builder
	staff       *feed.Builder
	ranking     *RankingService
	filters     *FilterEngine
	prioritizer *Prioritizer
	cacheTTL    time.Duration

	mu         sync.RWMutex
	state      *catalogState
	generation int64
}

// NewCatalogService creates a new catalog service with dependencies.
// cache and metrics may be nil.
func NewCatalogService(
	source domain.FeedSource,
	cache domain.CacheRepository,
	metrics domain.CatalogMetrics,
	logger *zap.Logger,
	config CatalogServiceConfig,
) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &CatalogService{
		source:      source,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		storefront:  feed.NewBuilder(feed.StorefrontBuild, Classify),
		staff:       feed.NewBuilder(feed.StaffBuild, Classify),
		ranking:     NewRankingService(logger),
		filters:     NewFilterEngine(),
		prioritizer: NewPrioritizer(config.Prioritizer),
		cacheTTL:    cacheTTL,
	}
}

// Reload fetches and parses the feed and swaps in the new catalog. On failure
// the previous catalog stays in place and the error wraps domain.ErrFeedUnavailable.
func (s *CatalogService) Reload(ctx context.Context) (*domain.CatalogSnapshot, error) {
	text, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	built := s.storefront.Build(text)
	staff := s.staff.Build(text)
	products := s.prioritizer.Prioritize(built.Products)

	state := &catalogState{
		snapshot: domain.CatalogSnapshot{
			Products: products,
			Staff:    staff.Products,
			Dropped:  built.Dropped,
		},
		byID:      indexByID(products),
		staffByID: indexByID(staff.Products),
	}

	s.mu.Lock()
	s.generation++
	state.snapshot.Generation = s.generation
	s.state = state
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ObserveLoad(len(products), built.Dropped)
	}
	s.logger.Info("catalog loaded",
		zap.Int64("generation", state.snapshot.Generation),
		zap.Int("products", len(products)),
		zap.Int("dropped", built.Dropped))

	snapshot := state.snapshot
	return &snapshot, nil
}

// Current returns the loaded snapshot.
func (s *CatalogService) Current() (*domain.CatalogSnapshot, error) {
	state, err := s.current()
	if err != nil {
		return nil, err
	}
	snapshot := state.snapshot
	return &snapshot, nil
}

func (s *CatalogService) current() (*catalogState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return s.state, nil
}

// Search ranks products against query. See RankingService.Search.
func (s *CatalogService) Search(products []domain.Product, query string) []domain.Product {
	return s.ranking.Search(products, query)
}

// ApplyFilter narrows products by raw filter and category tags. When a catalog
// is loaded the trending cap counts in its order, so products may be search results.
func (s *CatalogService) ApplyFilter(products []domain.Product, filterTag, categoryTag string) ([]domain.Product, error) {
	filter, err := domain.ParseFilterTag(filterTag)
	if err != nil {
		return nil, err
	}
	category, err := domain.ParseCategoryTag(categoryTag)
	if err != nil {
		return nil, err
	}

	var positions map[int]int
	if state, err := s.current(); err == nil {
		positions = state.byID
	}
	return s.filters.ApplyRanked(products, positions, filter, category)
}

// Prioritize reorders a full catalog with the configured pinned products and keywords.
func (s *CatalogService) Prioritize(products []domain.Product) []domain.Product {
	return s.prioritizer.Prioritize(products)
}

// Query runs search, then filter, then category over the current catalog and
// returns one page of views plus the total number of matches.
// Flow: validate tags -> check cache -> search -> filter -> cache -> paginate
func (s *CatalogService) Query(ctx context.Context, request *domain.SearchRequest) ([]domain.ProductView, int, error) {
	if request == nil || request.Offset < 0 || request.Limit < 0 {
		return nil, 0, domain.ErrInvalidRequest
	}

	filter, err := domain.ParseFilterTag(request.Filter)
	if err != nil {
		return nil, 0, err
	}
	category, err := domain.ParseCategoryTag(request.Category)
	if err != nil {
		return nil, 0, err
	}

	state, err := s.current()
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	cacheKey := s.generateCacheKey(state.snapshot.Generation, request.Query, filter, category)

	products, err := s.getFromCache(ctx, cacheKey, state)
	if err != nil {
		products = s.ranking.Search(state.snapshot.Products, request.Query)
		products, err = s.filters.ApplyRanked(products, state.byID, filter, category)
		if err != nil {
			return nil, 0, err
		}
		if err := s.setInCache(ctx, cacheKey, products); err != nil {
			s.logger.Warn("search cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveSearch(time.Since(start), len(products))
	}

	page := paginate(products, request.Offset, request.Limit)
	views := make([]domain.ProductView, len(page))
	for i, p := range page {
		views[i] = NewProductView(p)
	}
	return views, len(products), nil
}

// Product returns a single storefront product by its catalog ID.
func (s *CatalogService) Product(id int) (domain.ProductView, error) {
	state, err := s.current()
	if err != nil {
		return domain.ProductView{}, err
	}
	idx, ok := state.byID[id]
	if !ok {
		return domain.ProductView{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	return NewProductView(state.snapshot.Products[idx]), nil
}

// generateCacheKey creates a normalized cache key for a query.
// Format: "catalog:{generation}:{query}:{filter}:{category}"
func (s *CatalogService) generateCacheKey(generation int64, query string, filter domain.FilterTag, category domain.CategoryTag) string {
	return fmt.Sprintf("catalog:%d:%s:%s:%s", generation, normalizeForCacheKey(query), filter, category)
}

// normalizeForCacheKey lowercases s and collapses whitespace. Punctuation is
// kept because it changes fuzzy results.
func normalizeForCacheKey(s string) string {
	result := strings.ToLower(s)
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache resolves cached product IDs against the current snapshot.
func (s *CatalogService) getFromCache(ctx context.Context, key string, state *catalogState) ([]domain.Product, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, domain.ErrCacheMiss
	}

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		idx, ok := state.byID[id]
		if !ok {
			return nil, domain.ErrCacheMiss
		}
		products = append(products, state.snapshot.Products[idx])
	}
	return products, nil
}

// setInCache stores the ordered product IDs of a result list.
func (s *CatalogService) setInCache(ctx context.Context, key string, products []domain.Product) error {
	if s.cache == nil {
		return nil
	}
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}

func indexByID(products []domain.Product) map[int]int {
	index := make(map[int]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}
	return index
}

// paginate slices products; a zero limit means no limit.
func paginate(products []domain.Product, offset, limit int) []domain.Product {
	if offset >= len(products) {
		return []domain.Product{}
	}
	products = products[offset:]
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products
}
