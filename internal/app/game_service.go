package app

import (
	"context"
	"log"
	"time"

	"daily-riddle-service/internal/domain"
)

// UserStore abstracts the keyed record store holding one document per player.
type UserStore interface {
	// GetOrCreate returns the record for id, creating the zeroed default if
	// absent and merging the denormalized email either way. The boolean
	// reports whether the record was created by this call.
	GetOrCreate(ctx context.Context, id, email string) (domain.UserRecord, bool, error)
	Get(ctx context.Context, id string) (domain.UserRecord, error)
	// ApplyScore adds awarded points and stamps the day's outcome in a
	// single field-level update, returning the refreshed record.
	ApplyScore(ctx context.Context, id string, awarded int, date string, correct bool) (domain.UserRecord, error)
	// CountCorrect counts records already credited with a correct answer on date.
	CountCorrect(ctx context.Context, date string) (int, error)
	// TopByPoints returns up to limit records sorted by points descending.
	TopByPoints(ctx context.Context, limit int) ([]domain.UserRecord, error)
}

// IdentityStore is the authentication collaborator.
type IdentityStore interface {
	ResolveByEmail(ctx context.Context, email string) (domain.Identity, error)
	Create(ctx context.Context, email, password string) (domain.Identity, error)
	Authenticate(ctx context.Context, email, password string) (domain.Identity, error)
}

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// RiddleSource supplies the riddle for a calendar day. Implementations must
// be deterministic: the same day yields the same riddle for every caller.
type RiddleSource interface {
	RiddleFor(ctx context.Context, day time.Time) (domain.Riddle, error)
}

// BoardCache is an optional read-through cache for the top-N query.
type BoardCache interface {
	Get(ctx context.Context) ([]domain.UserRecord, bool, error)
	Set(ctx context.Context, top []domain.UserRecord) error
	Invalidate(ctx context.Context) error
}

// Deps wires the collaborators of the game service.
type Deps struct {
	Users      UserStore
	Identities IdentityStore
	Sessions   SessionStore
	Riddles    RiddleSource
	Board      BoardCache // optional
	Window     Window
	Policy     Policy
	BoardSize  int
}

// GameService contains the daily-riddle use cases: login and registration,
// the daily view, answer arbitration and scoring, and board projection.
type GameService struct {
	deps Deps
	hub  *Hub
	now  func() time.Time
}

func NewGameService(deps Deps) *GameService {
	return NewGameServiceWithClock(deps, time.Now)
}

// NewGameServiceWithClock is test-only for deterministic timestamps.
func NewGameServiceWithClock(deps Deps, now func() time.Time) *GameService {
	if deps.BoardSize <= 0 {
		deps.BoardSize = 10
	}
	return &GameService{deps: deps, hub: NewHub(), now: now}
}

// LoginResult pairs a freshly opened session with the player's record.
type LoginResult struct {
	Token   string            `json:"token"`
	Record  domain.UserRecord `json:"record"`
	Created bool              `json:"created"` // record created by this login
}

// Register creates the identity, seeds the zeroed record, and opens a session.
func (s *GameService) Register(ctx context.Context, email, password string) (LoginResult, error) {
	identity, err := s.deps.Identities.Create(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	return s.openSession(ctx, identity)
}

// Login authenticates an existing identity. An unregistered email surfaces
// domain.ErrIdentityNotFound so the caller can prompt account creation.
func (s *GameService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	identity, err := s.deps.Identities.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	return s.openSession(ctx, identity)
}

func (s *GameService) openSession(ctx context.Context, identity domain.Identity) (LoginResult, error) {
	record, created, err := s.deps.Users.GetOrCreate(ctx, identity.ID, identity.Email)
	if err != nil {
		return LoginResult{}, err
	}
	token, err := s.deps.Sessions.Create(ctx, identity.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Record: record, Created: created}, nil
}

// Resolve maps a session token back to a user id.
func (s *GameService) Resolve(ctx context.Context, token string) (string, error) {
	return s.deps.Sessions.Resolve(ctx, token)
}

// Logout drops the session. Unknown tokens are not an error.
func (s *GameService) Logout(ctx context.Context, token string) error {
	err := s.deps.Sessions.Delete(ctx, token)
	if err == domain.ErrSessionNotFound {
		return nil
	}
	return err
}

// RiddleView is the player-facing riddle: the answer is withheld.
type RiddleView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// TodayView describes what the player may do right now.
type TodayView struct {
	Date            string      `json:"date"`
	Open            bool        `json:"open"`
	AlreadyAnswered bool        `json:"alreadyAnswered"`
	Points          int         `json:"points"`
	Riddle          *RiddleView `json:"riddle,omitempty"` // present only when open and unanswered
}

// Today reports the window state and, when answering is possible, the riddle.
func (s *GameService) Today(ctx context.Context, userID string) (TodayView, error) {
	now := s.now()
	record, err := s.deps.Users.Get(ctx, userID)
	if err != nil {
		return TodayView{}, err
	}

	view := TodayView{
		Date:   s.deps.Window.Today(now),
		Open:   s.deps.Window.IsOpen(now),
		Points: record.Points,
	}
	view.AlreadyAnswered = record.AnsweredDate == view.Date
	if !view.Open || view.AlreadyAnswered {
		return view, nil
	}

	riddle, err := s.deps.Riddles.RiddleFor(ctx, s.deps.Window.Local(now))
	if err != nil {
		return TodayView{}, err
	}
	view.Riddle = &RiddleView{Question: riddle.Question, Options: riddle.Options}
	return view, nil
}

// SubmitStatus distinguishes the ordinary non-scoring outcomes from a scored
// submission. Closed window and repeat submissions are branches, not errors.
type SubmitStatus string

const (
	StatusScored          SubmitStatus = "scored"
	StatusWindowClosed    SubmitStatus = "window_closed"
	StatusAlreadyAnswered SubmitStatus = "already_answered"
)

// SubmitResult is the outcome of a submission attempt.
type SubmitResult struct {
	Status  SubmitStatus      `json:"status"`
	Correct bool              `json:"correct"`
	Awarded int               `json:"awarded"`
	Record  domain.UserRecord `json:"record"`
}

// SubmitAnswer arbitrates and scores one submission. The count of players
// already correct today is read immediately before scoring; two racing
// submissions may observe the same count and both take the same bonus. That
// check-then-act race is accepted and deliberately not wrapped in a
// transaction, matching the store's per-document update model.
func (s *GameService) SubmitAnswer(ctx context.Context, userID, chosen string) (SubmitResult, error) {
	now := s.now()
	if !s.deps.Window.IsOpen(now) {
		return SubmitResult{Status: StatusWindowClosed}, nil
	}
	today := s.deps.Window.Today(now)

	record, err := s.deps.Users.Get(ctx, userID)
	if err != nil {
		return SubmitResult{}, err
	}
	if record.AnsweredDate == today {
		return SubmitResult{Status: StatusAlreadyAnswered, Record: record}, nil
	}

	riddle, err := s.deps.Riddles.RiddleFor(ctx, s.deps.Window.Local(now))
	if err != nil {
		return SubmitResult{}, err
	}

	correctRank, err := s.deps.Users.CountCorrect(ctx, today)
	if err != nil {
		return SubmitResult{}, err
	}

	awarded, correct := scoreAnswer(riddle, chosen, correctRank, s.deps.Policy)

	// The guard flag is only set by this write; if it fails the player may
	// safely retry after the error surfaces.
	updated, err := s.deps.Users.ApplyScore(ctx, userID, awarded, today, correct)
	if err != nil {
		return SubmitResult{}, err
	}

	s.refreshBoard(ctx)

	return SubmitResult{Status: StatusScored, Correct: correct, Awarded: awarded, Record: updated}, nil
}

// Leaderboard projects the top-N board with the requester's rank, if shown.
func (s *GameService) Leaderboard(ctx context.Context, userID string) (domain.Leaderboard, error) {
	top, err := s.topRecords(ctx)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	return Project(top, userID, s.now()), nil
}

// SubscribeBoard exposes live board updates for the transport layer.
func (s *GameService) SubscribeBoard() (<-chan domain.Leaderboard, func()) {
	return s.hub.Subscribe()
}

func (s *GameService) topRecords(ctx context.Context) ([]domain.UserRecord, error) {
	if s.deps.Board != nil {
		if top, ok, err := s.deps.Board.Get(ctx); err == nil && ok {
			return top, nil
		}
	}
	top, err := s.deps.Users.TopByPoints(ctx, s.deps.BoardSize)
	if err != nil {
		return nil, err
	}
	if s.deps.Board != nil {
		if err := s.deps.Board.Set(ctx, top); err != nil {
			log.Printf("board cache set failed: %v", err)
		}
	}
	return top, nil
}

// refreshBoard drops the stale cache and pushes the new board to subscribers.
// Best-effort: a scored submission is never failed over board plumbing.
func (s *GameService) refreshBoard(ctx context.Context) {
	if s.deps.Board != nil {
		if err := s.deps.Board.Invalidate(ctx); err != nil {
			log.Printf("board cache invalidate failed: %v", err)
		}
	}
	top, err := s.topRecords(ctx)
	if err != nil {
		log.Printf("board refresh failed: %v", err)
		return
	}
	s.hub.Publish(Project(top, "", s.now()))
}
