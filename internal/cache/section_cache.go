// Package cache holds the in-memory cache for the public section listing.
// Section items change rarely and the public listing is the hottest read
// path, so a short TTL cache in front of the database is enough.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/metrics"
)

const (
	activeSectionsKey = "sections:active"
	cacheCheckPeriod  = time.Minute
)

// SectionDataSource is the read side the cache fills from.
type SectionDataSource interface {
	ListSectionItems(ctx context.Context, onlyActive bool) ([]*models.SectionItem, error)
}

// SectionCache caches the active section listing served to the public site.
// Admin mutations call Invalidate so changes appear on the next read rather
// than after TTL expiry.
type SectionCache struct {
	cache      *gocache.Cache
	dataSource SectionDataSource
	ttl        time.Duration
}

// NewSectionCache creates a section cache with the given TTL in seconds.
func NewSectionCache(dataSource SectionDataSource, ttlSeconds int) *SectionCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &SectionCache{
		cache:      gocache.New(ttl, cacheCheckPeriod),
		dataSource: dataSource,
		ttl:        ttl,
	}
}

// GetActive returns the active section items, serving from cache when fresh.
func (sc *SectionCache) GetActive(ctx context.Context) ([]*models.SectionItem, error) {
	if data, found := sc.cache.Get(activeSectionsKey); found {
		logger.Debug("Section cache hit")
		metrics.CacheHits.WithLabelValues("sections").Inc()
		if items, ok := data.([]*models.SectionItem); ok {
			return items, nil
		}
		// Corrupt entry, drop and refetch
		sc.cache.Delete(activeSectionsKey)
	}

	metrics.CacheMisses.WithLabelValues("sections").Inc()

	items, err := sc.dataSource.ListSectionItems(ctx, true)
	if err != nil {
		logger.Error("Failed to refresh section cache", zap.Error(err))
		return nil, err
	}

	sc.cache.Set(activeSectionsKey, items, sc.ttl)
	logger.Debug("Section cache refreshed", zap.Int("count", len(items)))

	return items, nil
}

// Invalidate drops the cached listing after a mutation.
func (sc *SectionCache) Invalidate() {
	sc.cache.Delete(activeSectionsKey)
}
