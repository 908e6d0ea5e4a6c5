package postgres

import (
	"context"
	"errors"
	"fmt"

	"daily-riddle-service/internal/domain"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const uniqueViolation = "23505"

// UserStore persists one row per player in the users table.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) GetOrCreate(ctx context.Context, id, email string) (domain.UserRecord, bool, error) {
	rec, err := s.Get(ctx, id)
	if err == nil {
		if email != "" && rec.Email != email {
			// Merge the denormalized email on login, like the identity side does.
			if _, err := s.pool.Exec(ctx, `UPDATE users SET email=$2 WHERE id=$1`, id, email); err != nil {
				return domain.UserRecord{}, false, fmt.Errorf("merge email: %w", err)
			}
			rec.Email = email
		}
		return rec, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.UserRecord{}, false, err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, email, points, answered_date, answered_correctly)
		 VALUES ($1, $2, 0, '', FALSE)
		 ON CONFLICT (id) DO NOTHING`, id, email)
	if err != nil {
		return domain.UserRecord{}, false, fmt.Errorf("create user record: %w", err)
	}

	rec, err = s.Get(ctx, id)
	if err != nil {
		return domain.UserRecord{}, false, err
	}
	return rec, true, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (domain.UserRecord, error) {
	rec := domain.UserRecord{ID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT email, points, answered_date, answered_correctly FROM users WHERE id=$1`, id).
		Scan(&rec.Email, &rec.Points, &rec.AnsweredDate, &rec.AnsweredCorrectly)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserRecord{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("load user record: %w", err)
	}
	return rec, nil
}

// ApplyScore is a single field-level update: points grow in place and the
// day's outcome is stamped in the same statement.
func (s *UserStore) ApplyScore(ctx context.Context, id string, awarded int, date string, correct bool) (domain.UserRecord, error) {
	rec := domain.UserRecord{ID: id}
	err := s.pool.QueryRow(ctx,
		`UPDATE users
		 SET points = points + $2, answered_date = $3, answered_correctly = $4
		 WHERE id = $1
		 RETURNING email, points, answered_date, answered_correctly`,
		id, awarded, date, correct).
		Scan(&rec.Email, &rec.Points, &rec.AnsweredDate, &rec.AnsweredCorrectly)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserRecord{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("apply score: %w", err)
	}
	return rec, nil
}

func (s *UserStore) CountCorrect(ctx context.Context, date string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE answered_date=$1 AND answered_correctly`, date).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count correct answers: %w", err)
	}
	return count, nil
}

func (s *UserStore) TopByPoints(ctx context.Context, limit int) ([]domain.UserRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, email, points, answered_date, answered_correctly
		 FROM users ORDER BY points DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	defer rows.Close()

	var top []domain.UserRecord
	for rows.Next() {
		var rec domain.UserRecord
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.Points, &rec.AnsweredDate, &rec.AnsweredCorrectly); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		top = append(top, rec)
	}
	return top, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
