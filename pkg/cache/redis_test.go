package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// redisURL returns the server used by the Redis tests, skipping when unset.
func redisURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("SHELFVIEW_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SHELFVIEW_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, redisURL(t))
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if _, hit, err := c.Get(ctx, "test:missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}
	if err := c.Set(ctx, "test:key", []byte("<svg/>"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "test:key")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get(key) = %q, %v, %v; want hit", data, hit, err)
	}

	cleared, err := Clear(ctx, c)
	if err != nil || !cleared {
		t.Fatalf("Clear(redis) = %v, %v; want true, nil", cleared, err)
	}
	if _, hit, _ := c.Get(ctx, "test:key"); hit {
		t.Error("key survived Clear")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisCache should reject a malformed url")
	}
}
