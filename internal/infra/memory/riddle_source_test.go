package memory

import (
	"context"
	"testing"
	"time"

	"daily-riddle-service/internal/domain"
)

func TestPoolSourceIsDeterministic(t *testing.T) {
	pool := []domain.Riddle{
		{Question: "one", Answer: "a"},
		{Question: "two", Answer: "b"},
		{Question: "three", Answer: "c"},
	}
	source, err := NewPoolSource(pool)
	if err != nil {
		t.Fatalf("new pool source: %v", err)
	}

	day := time.Date(2026, 3, 17, 21, 0, 0, 0, time.UTC)
	first, err := source.RiddleFor(context.Background(), day)
	if err != nil {
		t.Fatalf("riddle for: %v", err)
	}
	second, _ := source.RiddleFor(context.Background(), day)
	if first.Question != second.Question {
		t.Fatalf("same day produced different riddles: %q vs %q", first.Question, second.Question)
	}
	// Day 17 mod 3 selects index 2.
	if first.Question != "three" {
		t.Fatalf("expected riddle three, got %q", first.Question)
	}
}

func TestPoolSourceRejectsEmptyPool(t *testing.T) {
	if _, err := NewPoolSource(nil); err != domain.ErrEmptyPool {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestStaticSourceIgnoresDate(t *testing.T) {
	riddle := domain.Riddle{Question: "curated", Answer: "yes"}
	source := NewStaticSource(riddle)

	for _, day := range []time.Time{
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC),
	} {
		got, err := source.RiddleFor(context.Background(), day)
		if err != nil {
			t.Fatalf("riddle for: %v", err)
		}
		if got.Question != "curated" {
			t.Fatalf("expected the curated riddle, got %q", got.Question)
		}
	}
}
