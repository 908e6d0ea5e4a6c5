package domain

import "time"

// UserRecord is the persistent per-player state, one record per identity.
// Points only ever grow, and only through the scoring engine.
type UserRecord struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Points            int    `json:"points"`
	AnsweredDate      string `json:"answeredDate"`      // ISO date of the last submission, empty if never answered
	AnsweredCorrectly bool   `json:"answeredCorrectly"` // outcome of the submission made on AnsweredDate
}

// Identity is the authentication-side view of a player.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Riddle is an immutable daily question with exactly one correct option.
// Correctness is exact, case-sensitive string equality with Answer.
type Riddle struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// LeaderboardRow is a single displayed board line.
type LeaderboardRow struct {
	Rank   int    `json:"rank"`
	Email  string `json:"email"`
	Points int    `json:"points"`
}

// Leaderboard is the projected top-N board. MyRank is set only when the
// requesting player appears among the rows; nil means outside the shown set.
type Leaderboard struct {
	Rows      []LeaderboardRow `json:"rows"`
	MyRank    *int             `json:"myRank,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
