package cache_test

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"corrigeaqui/internal/cache"
	"corrigeaqui/internal/model"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("invalid test redis URL: %v", err)
	}
	opts.DB = 1 // separate DB for tests

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available, skipping test: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestMarkerCache_RoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	markerCache := cache.NewMarkerCache(client)

	// Empty cache is a miss, not an error
	_, found, err := markerCache.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Errorf("expected a miss on an empty cache")
	}

	markers := []model.MapMarker{
		{ID: 1, Lat: -23.55, Lng: -46.63, Category: "Vias Públicas", CategoryColor: "#ef4444", Title: "Buraco", Status: model.DefaultProgress, Images: []string{"a.jpg"}},
		{ID: 2, Lat: -23.56, Lng: -46.64, Category: model.DefaultCategoryName, CategoryColor: model.DefaultCategoryColor, Title: "Lixo", Status: model.ResolvedProgress, Images: []string{}},
	}
	if err := markerCache.Set(ctx, markers); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, found, err := markerCache.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found {
		t.Fatalf("expected a hit after set")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(got))
	}
	if got[0].Category != "Vias Públicas" || got[0].Lat != -23.55 {
		t.Errorf("round trip mangled marker: %+v", got[0])
	}

	// Key carries a TTL so a lost invalidation heals on its own
	ttl, err := client.TTL(ctx, cache.MarkerCacheKey).Result()
	if err != nil {
		t.Fatalf("ttl failed: %v", err)
	}
	if ttl <= 0 || ttl > cache.MarkerCacheTTL {
		t.Errorf("expected TTL in (0, %v], got %v", cache.MarkerCacheTTL, ttl)
	}
}

func TestMarkerCache_Invalidate(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	markerCache := cache.NewMarkerCache(client)

	if err := markerCache.Set(ctx, []model.MapMarker{{ID: 1}}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := markerCache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	_, found, err := markerCache.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Errorf("expected a miss after invalidation")
	}

	// Invalidating an already empty cache is fine
	if err := markerCache.Invalidate(ctx); err != nil {
		t.Errorf("second invalidate failed: %v", err)
	}
}

func TestMarkerCache_CorruptEntryIsAMiss(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	markerCache := cache.NewMarkerCache(client)

	if err := client.Set(ctx, cache.MarkerCacheKey, "not json", 0).Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, found, err := markerCache.Get(ctx)
	if err != nil {
		t.Fatalf("corrupt entry must not error: %v", err)
	}
	if found {
		t.Errorf("corrupt entry must read as a miss")
	}
}
