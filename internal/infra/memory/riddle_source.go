package memory

import (
	"context"
	"time"

	"daily-riddle-service/internal/domain"
)

// PoolSource selects the day's riddle from a fixed pool by day of month,
// so every player sees the same riddle on the same calendar date.
type PoolSource struct {
	pool []domain.Riddle
}

func NewPoolSource(pool []domain.Riddle) (*PoolSource, error) {
	if len(pool) == 0 {
		return nil, domain.ErrEmptyPool
	}
	return &PoolSource{pool: pool}, nil
}

func (s *PoolSource) RiddleFor(_ context.Context, day time.Time) (domain.Riddle, error) {
	return s.pool[day.Day()%len(s.pool)], nil
}

// StaticSource returns one manually curated riddle regardless of the date,
// for deployments that swap the question by hand every day.
type StaticSource struct {
	riddle domain.Riddle
}

func NewStaticSource(riddle domain.Riddle) *StaticSource {
	return &StaticSource{riddle: riddle}
}

func (s *StaticSource) RiddleFor(context.Context, time.Time) (domain.Riddle, error) {
	return s.riddle, nil
}
