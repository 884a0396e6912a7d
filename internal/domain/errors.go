package domain

import "errors"

var (
	// ErrProductNotFound is returned when no product has the requested identifier
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownFilter is returned for a filter tag outside the known set
	ErrUnknownFilter = errors.New("unknown filter tag")

	// ErrUnknownCategory is returned for a category tag outside the known set
	ErrUnknownCategory = errors.New("unknown category tag")

	// ErrFeedUnavailable is returned when every fetch attempt for the feed failed
	ErrFeedUnavailable = errors.New("unable to load product feed")

	// ErrCatalogNotLoaded is returned when no successful load has happened yet
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
