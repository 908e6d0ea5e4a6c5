package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"daily-riddle-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const boardKey = "riddle:leaderboard:top"

// BoardCache keeps the top-N record slice as JSON with a short TTL. It is
// invalidated on every scoring write, so the TTL only bounds staleness when
// an invalidation is lost.
type BoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBoardCache(client *redis.Client, ttl time.Duration) *BoardCache {
	return &BoardCache{client: client, ttl: ttl}
}

func (c *BoardCache) Get(ctx context.Context) ([]domain.UserRecord, bool, error) {
	raw, err := c.client.Get(ctx, boardKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("board cache get: %w", err)
	}
	var top []domain.UserRecord
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, false, fmt.Errorf("board cache decode: %w", err)
	}
	return top, true, nil
}

func (c *BoardCache) Set(ctx context.Context, top []domain.UserRecord) error {
	raw, err := json.Marshal(top)
	if err != nil {
		return fmt.Errorf("board cache encode: %w", err)
	}
	return c.client.Set(ctx, boardKey, raw, c.ttl).Err()
}

func (c *BoardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, boardKey).Err()
}
