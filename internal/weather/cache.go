package weather

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultCacheSize = 1024

// CachedProvider memoises observations of another Provider for a fixed TTL.
// Places are bucketed on a 0.01° grid, so launches of the same site share an entry.
type CachedProvider struct {
	next  Provider
	cache *expirable.LRU[models.Coordinates, models.WindObservation]
	log   *slog.Logger
}

// NewCachedProvider wraps next with a TTL cache of up to size entries.
func NewCachedProvider(next Provider, size int, ttl time.Duration, log *slog.Logger) *CachedProvider {
	if size <= 0 {
		size = defaultCacheSize
	}

	return &CachedProvider{
		next:  next,
		cache: expirable.NewLRU[models.Coordinates, models.WindObservation](size, nil, ttl),
		log:   log,
	}
}

// Observe returns a cached observation when one is fresh, otherwise asks the wrapped provider.
// Errors are not cached.
func (cp *CachedProvider) Observe(ctx context.Context, coords models.Coordinates) (*models.WindObservation, error) {
	key := bucket(coords)

	if cached, ok := cp.cache.Get(key); ok {
		cp.log.DebugContext(ctx, "Wind observation cache hit", "lat", key.Latitude, "lon", key.Longitude)
		return &cached, nil
	}

	observation, err := cp.next.Observe(ctx, coords)
	if err != nil {
		return nil, err
	}
	cp.cache.Add(key, *observation)

	return observation, nil
}

// Len reports the number of cached places.
func (cp *CachedProvider) Len() int {
	return cp.cache.Len()
}

func bucket(c models.Coordinates) models.Coordinates {
	const scale = 100
	return models.Coordinates{
		Latitude:  math.Round(c.Latitude*scale) / scale,
		Longitude: math.Round(c.Longitude*scale) / scale,
	}
}
