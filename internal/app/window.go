package app

import (
	"fmt"
	"time"
)

// Window is the fixed daily interval during which answers are accepted.
// Both bounds are inclusive. The window's time zone also defines what
// "today" means for the one-answer-per-day guard and riddle selection.
type Window struct {
	loc                   *time.Location
	opensHour, opensMin   int
	closesHour, closesMin int
}

// NewWindow builds a Window from an IANA zone name and "HH:MM" bounds.
// Malformed input is a configuration error and should abort startup.
func NewWindow(timezone, opens, closes string) (Window, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Window{}, fmt.Errorf("load window timezone: %w", err)
	}
	oh, om, err := parseClock(opens)
	if err != nil {
		return Window{}, fmt.Errorf("parse window opens: %w", err)
	}
	ch, cm, err := parseClock(closes)
	if err != nil {
		return Window{}, fmt.Errorf("parse window closes: %w", err)
	}
	if ch*60+cm < oh*60+om {
		return Window{}, fmt.Errorf("window closes %s before it opens %s", closes, opens)
	}
	return Window{loc: loc, opensHour: oh, opensMin: om, closesHour: ch, closesMin: cm}, nil
}

func parseClock(raw string) (int, int, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// IsOpen reports whether now falls inside today's window. Evaluated fresh
// on every call; the five-minute window is too narrow to cache.
func (w Window) IsOpen(now time.Time) bool {
	local := now.In(w.loc)
	y, m, d := local.Date()
	opens := time.Date(y, m, d, w.opensHour, w.opensMin, 0, 0, w.loc)
	closes := time.Date(y, m, d, w.closesHour, w.closesMin, 0, 0, w.loc)
	return !local.Before(opens) && !local.After(closes)
}

// Local converts now into the window's zone.
func (w Window) Local(now time.Time) time.Time {
	return now.In(w.loc)
}

// Today returns the ISO calendar date of now in the window's zone.
func (w Window) Today(now time.Time) string {
	return now.In(w.loc).Format("2006-01-02")
}
