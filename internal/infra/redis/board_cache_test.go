package redis

import (
	"context"
	"testing"
	"time"

	"daily-riddle-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBoardCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewBoardCache(client, 30*time.Second)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx); err != nil || ok {
		t.Fatalf("expected cold cache miss, ok=%v err=%v", ok, err)
	}

	top := []domain.UserRecord{
		{ID: "u1", Email: "a@example.com", Points: 15},
		{ID: "u2", Email: "b@example.com", Points: 10},
	}
	if err := cache.Set(ctx, top); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("expected cache hit, ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].ID != "u1" || got[1].Points != 10 {
		t.Fatalf("unexpected cached board: %+v", got)
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := cache.Get(ctx); ok {
		t.Fatalf("expected miss after invalidation")
	}
}
