package memory

import (
	"context"
	"sort"
	"sync"

	"daily-riddle-service/internal/domain"
)

// UserStore is an in-memory implementation of app.UserStore. Tie order on
// the board follows record creation order, like document arrival order in
// the backing store.
type UserStore struct {
	mu      sync.RWMutex
	records map[string]domain.UserRecord
	order   []string
}

func NewUserStore() *UserStore {
	return &UserStore{records: make(map[string]domain.UserRecord)}
}

func (s *UserStore) GetOrCreate(_ context.Context, id, email string) (domain.UserRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[id]; ok {
		if email != "" && rec.Email != email {
			rec.Email = email
			s.records[id] = rec
		}
		return rec, false, nil
	}
	rec := domain.UserRecord{ID: id, Email: email}
	s.records[id] = rec
	s.order = append(s.order, id)
	return rec, true, nil
}

func (s *UserStore) Get(_ context.Context, id string) (domain.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.UserRecord{}, domain.ErrUserNotFound
	}
	return rec, nil
}

func (s *UserStore) ApplyScore(_ context.Context, id string, awarded int, date string, correct bool) (domain.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.UserRecord{}, domain.ErrUserNotFound
	}
	rec.Points += awarded
	rec.AnsweredDate = date
	rec.AnsweredCorrectly = correct
	s.records[id] = rec
	return rec, nil
}

func (s *UserStore) CountCorrect(_ context.Context, date string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, rec := range s.records {
		if rec.AnsweredDate == date && rec.AnsweredCorrectly {
			count++
		}
	}
	return count, nil
}

func (s *UserStore) TopByPoints(_ context.Context, limit int) ([]domain.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	top := make([]domain.UserRecord, 0, len(s.order))
	for _, id := range s.order {
		top = append(top, s.records[id])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Points > top[j].Points
	})
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}
