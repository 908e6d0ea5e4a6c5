package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"daily-riddle-service/internal/app"
	"daily-riddle-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// RiddleSource caches the selected riddle per calendar date and falls back
// to the underlying source on a miss. Cached as:
//
//	SET riddle:day:{YYYY-MM-DD} {json riddle}
//
// Selection stays deterministic because the key is the date itself.
type RiddleSource struct {
	client *redis.Client
	source app.RiddleSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewRiddleSource(client *redis.Client, source app.RiddleSource, ttl time.Duration) *RiddleSource {
	return &RiddleSource{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RiddleSource) RiddleFor(ctx context.Context, day time.Time) (domain.Riddle, error) {
	date := day.Format("2006-01-02")
	key := r.key(date)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var riddle domain.Riddle
		if err := json.Unmarshal(raw, &riddle); err == nil {
			return riddle, nil
		}
	}

	result, err, _ := r.sf.Do(date, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
			var riddle domain.Riddle
			if err := json.Unmarshal(raw, &riddle); err == nil {
				return riddle, nil
			}
		}

		riddle, err := r.source.RiddleFor(ctx, day)
		if err != nil {
			return domain.Riddle{}, err
		}

		if raw, err := json.Marshal(riddle); err == nil {
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return riddle, nil
	})
	if err != nil {
		return domain.Riddle{}, err
	}
	return result.(domain.Riddle), nil
}

func (r *RiddleSource) key(date string) string {
	return "riddle:day:" + date
}

func (r *RiddleSource) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
