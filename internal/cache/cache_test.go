package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFromClient(client)
}

func TestSetGetRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name string
		N    int
	}
	in := payload{Name: "Alta", N: 7}
	if err := c.Set(ctx, "resort:1", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out payload
	found, err := c.Get(ctx, "resort:1", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected key to be found")
	}
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestGetMiss(t *testing.T) {
	c := newTestCache(t)
	var out struct{ Name string }
	found, err := c.Get(context.Background(), "resort:missing", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("expected miss")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	if err := c.Set(ctx, "resort:1", "x", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Delete(ctx, "resort:1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := c.Delete(ctx, "resort:1"); err != nil {
		t.Fatalf("second delete on already-absent key should not error: %v", err)
	}
}
