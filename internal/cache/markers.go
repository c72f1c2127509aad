package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"corrigeaqui/internal/model"
)

const (
	// MarkerCacheKey holds the assembled map marker list. All map viewers
	// share one list, so a single key is enough.
	MarkerCacheKey = "cache:markers"

	// MarkerCacheTTL bounds staleness when an invalidation is lost.
	MarkerCacheTTL = 10 * time.Minute
)

// MarkerCache caches the assembled map marker list. The list is rebuilt from
// the database on a miss and invalidated by the lifecycle worker whenever a
// post changes.
type MarkerCache interface {
	// Get returns the cached marker list. found=false on a miss.
	Get(ctx context.Context) (markers []model.MapMarker, found bool, err error)

	// Set stores the marker list with the cache TTL.
	Set(ctx context.Context, markers []model.MapMarker) error

	// Invalidate drops the cached list so the next read rebuilds it.
	Invalidate(ctx context.Context) error
}

// RedisMarkerCache implements MarkerCache on a single Redis string key
// holding the JSON-encoded marker list.
type RedisMarkerCache struct {
	client *redis.Client
}

// NewMarkerCache creates a MarkerCache backed by Redis.
func NewMarkerCache(client *redis.Client) MarkerCache {
	return &RedisMarkerCache{client: client}
}

func (c *RedisMarkerCache) Get(ctx context.Context) ([]model.MapMarker, bool, error) {
	startTime := time.Now()

	data, err := c.client.Get(ctx, MarkerCacheKey).Bytes()
	if err == redis.Nil {
		log.Printf("[MarkerCache] Get: MISS")
		return nil, false, nil
	}
	if err != nil {
		log.Printf("[MarkerCache] Get FAILED: err=%v", err)
		return nil, false, fmt.Errorf("get markers: %w", err)
	}

	var markers []model.MapMarker
	if err := json.Unmarshal(data, &markers); err != nil {
		log.Printf("[MarkerCache] Get decode error: err=%v", err)
		// Corrupt entry, treat as a miss and let the caller rebuild.
		return nil, false, nil
	}

	log.Printf("[MarkerCache] Get OK: markers=%d duration=%v", len(markers), time.Since(startTime))
	return markers, true, nil
}

func (c *RedisMarkerCache) Set(ctx context.Context, markers []model.MapMarker) error {
	data, err := json.Marshal(markers)
	if err != nil {
		return fmt.Errorf("marshal markers: %w", err)
	}

	if err := c.client.Set(ctx, MarkerCacheKey, data, MarkerCacheTTL).Err(); err != nil {
		log.Printf("[MarkerCache] Set FAILED: err=%v", err)
		return fmt.Errorf("set markers: %w", err)
	}

	log.Printf("[MarkerCache] Set OK: markers=%d", len(markers))
	return nil
}

func (c *RedisMarkerCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, MarkerCacheKey).Err(); err != nil {
		log.Printf("[MarkerCache] Invalidate FAILED: err=%v", err)
		return fmt.Errorf("invalidate markers: %w", err)
	}

	log.Printf("[MarkerCache] Invalidate OK")
	return nil
}
