package memory

import (
	"context"
	"fmt"
	"sync"

	"daily-riddle-service/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// IdentityStore keeps identities in memory, hashing passwords the same way
// as the persistent implementation so demo and production behave alike.
type IdentityStore struct {
	mu       sync.RWMutex
	byEmail  map[string]domain.Identity
	password map[string][]byte // keyed by identity id
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		byEmail:  make(map[string]domain.Identity),
		password: make(map[string][]byte),
	}
}

func (s *IdentityStore) ResolveByEmail(_ context.Context, email string) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.byEmail[email]
	if !ok {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	return identity, nil
}

func (s *IdentityStore) Create(_ context.Context, email, password string) (domain.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return domain.Identity{}, domain.ErrEmailTaken
	}
	identity := domain.Identity{ID: uuid.NewString(), Email: email}
	s.byEmail[email] = identity
	s.password[identity.ID] = hash
	return identity, nil
}

func (s *IdentityStore) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	identity, err := s.ResolveByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}
	s.mu.RLock()
	hash := s.password[identity.ID]
	s.mu.RUnlock()
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return identity, nil
}
