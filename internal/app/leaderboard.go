package app

import (
	"time"

	"daily-riddle-service/internal/domain"
)

// Project turns a store-sorted top-N slice into a displayable board.
// Ranks are assigned 1..N in the given order; ties keep the store's order.
// MyRank is set iff requestingID appears among the rows.
func Project(top []domain.UserRecord, requestingID string, now time.Time) domain.Leaderboard {
	rows := make([]domain.LeaderboardRow, 0, len(top))
	var myRank *int
	for i, rec := range top {
		rank := i + 1
		rows = append(rows, domain.LeaderboardRow{
			Rank:   rank,
			Email:  rec.Email,
			Points: rec.Points,
		})
		if requestingID != "" && rec.ID == requestingID {
			r := rank
			myRank = &r
		}
	}
	return domain.Leaderboard{Rows: rows, MyRank: myRank, UpdatedAt: now}
}
