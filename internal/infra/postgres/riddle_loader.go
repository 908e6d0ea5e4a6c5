package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"daily-riddle-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// RiddleLoader selects the day's riddle out of a JSONB pool stored in the
// riddle_pools table. Selection is day-of-month modulo pool size, the same
// rule as the in-memory pool source.
type RiddleLoader struct {
	pool   *pgxpool.Pool
	poolID string
}

func NewRiddleLoader(pool *pgxpool.Pool, poolID string) *RiddleLoader {
	if poolID == "" {
		poolID = "default"
	}
	return &RiddleLoader{pool: pool, poolID: poolID}
}

func (l *RiddleLoader) RiddleFor(ctx context.Context, day time.Time) (domain.Riddle, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM riddle_pools WHERE id=$1`, l.poolID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Riddle{}, domain.ErrRiddleNotFound
	}
	if err != nil {
		return domain.Riddle{}, fmt.Errorf("load riddle pool: %w", err)
	}
	var riddles []domain.Riddle
	if err := json.Unmarshal(raw, &riddles); err != nil {
		return domain.Riddle{}, fmt.Errorf("unmarshal riddle pool: %w", err)
	}
	if len(riddles) == 0 {
		return domain.Riddle{}, domain.ErrEmptyPool
	}
	return riddles[day.Day()%len(riddles)], nil
}
