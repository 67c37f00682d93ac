package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *RedisDistanceCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisDistanceCache(client)
}

func TestRedisDistanceCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	entries := map[string]int{"0|1": 5, "1|2": 3, "0|2": 8}
	if err := c.PutMany(ctx, "data.json", entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.GetMany(ctx, "data.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("entry count = %d, want 3", len(got))
	}
	for pair, want := range entries {
		if got[pair] != want {
			t.Fatalf("entry %q = %d, want %d", pair, got[pair], want)
		}
	}
}

func TestRedisDistanceCacheScenariosAreIsolated(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.PutMany(ctx, "a.json", map[string]int{"0|1": 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.GetMany(ctx, "b.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("other scenario entries = %v, want none", got)
	}
}

func TestRedisDistanceCachePutManyEmptyIsNoop(t *testing.T) {
	c := newTestCache(t)

	if err := c.PutMany(context.Background(), "data.json", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedisDistanceCacheValidation(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.GetMany(ctx, "  "); err == nil {
		t.Fatal("blank scenario must error")
	}
	if err := c.PutMany(ctx, "", map[string]int{"0|1": 1}); err == nil {
		t.Fatal("empty scenario must error")
	}
	if err := c.PutMany(ctx, "data.json", map[string]int{" ": 1}); err == nil {
		t.Fatal("blank pair key must error")
	}

	nilCache := NewRedisDistanceCache(nil)
	if _, err := nilCache.GetMany(ctx, "data.json"); err == nil {
		t.Fatal("nil client must error")
	}
}
