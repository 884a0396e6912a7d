package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/giftshop/storefront/config"
	httpDelivery "github.com/giftshop/storefront/internal/delivery/http"
	"github.com/giftshop/storefront/internal/domain"
	"github.com/giftshop/storefront/internal/infrastructure/cache"
	"github.com/giftshop/storefront/internal/infrastructure/feed"
	"github.com/giftshop/storefront/internal/infrastructure/metrics"
	"github.com/giftshop/storefront/internal/logger"
	"github.com/giftshop/storefront/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logger.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("starting storefront",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL))

	catalogMetrics := metrics.NewCatalogMetrics(prometheus.DefaultRegisterer)

	// Initialize infrastructure dependencies
	searchCache, closeCache, err := newCache(cfg.Cache)
	if err != nil {
		zapLogger.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer closeCache()

	feedClient := feed.NewClient(feed.ClientConfig{
		Source:      cfg.Feed.Source,
		MaxAttempts: cfg.Feed.MaxAttempts,
		RetryUnit:   cfg.Feed.RetryUnit,
		Timeout:     cfg.Feed.Timeout,
	}, catalogMetrics, zapLogger.Named("feed"))

	// Initialize usecase layer
	catalog := usecase.NewCatalogService(
		feedClient,
		searchCache,
		catalogMetrics,
		zapLogger.Named("catalog"),
		usecase.CatalogServiceConfig{
			CacheTTL: cfg.Cache.TTL,
			Prioritizer: usecase.PrioritizerConfig{
				PinnedIDs: cfg.Catalog.PinnedIDs,
				Keywords:  cfg.Catalog.PriorityKeywords,
			},
		},
	)
	staff := usecase.NewStaffService(catalog)

	// A failed first load leaves the API up; clients retry via the reload endpoint
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout(cfg.Feed))
	if _, err := catalog.Reload(ctx); err != nil {
		zapLogger.Warn("initial catalog load failed", zap.Error(err))
	}
	cancel()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalog, staff, zapLogger.Named("http"))

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, zapLogger.Named("http"))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

func newCache(cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	if cfg.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{URL: cfg.RedisURL})
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			_ = redisCache.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	}

	memoryCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
	return memoryCache, func() { _ = memoryCache.Close() }, nil
}

// loadTimeout bounds the first load by every attempt plus its back-off.
func loadTimeout(cfg config.FeedConfig) time.Duration {
	attempts := time.Duration(max(cfg.MaxAttempts, 1))
	backoff := attempts * (attempts - 1) / 2 * cfg.RetryUnit
	return attempts*cfg.Timeout + backoff + 5*time.Second
}
