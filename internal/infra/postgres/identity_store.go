package postgres

import (
	"context"
	"errors"
	"fmt"

	"daily-riddle-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// IdentityStore persists identities with bcrypt password hashes.
type IdentityStore struct {
	pool *pgxpool.Pool
}

func NewIdentityStore(pool *pgxpool.Pool) *IdentityStore {
	return &IdentityStore{pool: pool}
}

func (s *IdentityStore) ResolveByEmail(ctx context.Context, email string) (domain.Identity, error) {
	identity := domain.Identity{Email: email}
	err := s.pool.QueryRow(ctx, `SELECT id FROM identities WHERE email=$1`, email).Scan(&identity.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}
	return identity, nil
}

func (s *IdentityStore) Create(ctx context.Context, email, password string) (domain.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	identity := domain.Identity{ID: uuid.NewString(), Email: email}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO identities (id, email, password_hash) VALUES ($1, $2, $3)`,
		identity.ID, email, hash)
	if isUniqueViolation(err) {
		return domain.Identity{}, domain.ErrEmailTaken
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("create identity: %w", err)
	}
	return identity, nil
}

func (s *IdentityStore) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	identity := domain.Identity{Email: email}
	var hash []byte
	err := s.pool.QueryRow(ctx, `SELECT id, password_hash FROM identities WHERE email=$1`, email).
		Scan(&identity.ID, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("authenticate identity: %w", err)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return identity, nil
}
