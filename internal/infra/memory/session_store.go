package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"daily-riddle-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionStore.
// Tokens never expire here; the Redis store owns TTL semantics.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string // token -> user id
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]string)}
}

func (s *SessionStore) Create(_ context.Context, userID string) (string, error) {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token, nil
}

func (s *SessionStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return userID, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, token)
	return nil
}
