package usecase

import (
	"context"
	"sync"
	"time"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/debounce"
	"stylemate/pkg/errors"
	"stylemate/pkg/logger"
)

// Session is one user's live application state. Mutations apply to the
// in-memory copy synchronously and are pushed to the backing store by a
// debounced whole-snapshot save; readers of the store may observe a stale
// snapshot until the quiet period elapses. Cross-user writes never go
// through a session, they hit the counterparty's document directly.
type Session struct {
	userID string

	mu    sync.Mutex
	user  *entity.User
	state *entity.UserAppState

	// swipe cursor state
	deck      []entity.ClothingItem
	cursor    int
	deckBuilt bool

	saver     *debounce.Debouncer
	stateRepo repository.StateRepository
}

// mutate applies fn under lock and schedules a debounced flush.
func (s *Session) mutate(fn func(*entity.UserAppState)) {
	s.mu.Lock()
	fn(s.state)
	s.mu.Unlock()
	s.saver.Trigger()
}

// read runs fn under lock without scheduling a save.
func (s *Session) read(fn func(*entity.UserAppState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// mutateErr is mutate with an error escape hatch: when fn fails nothing is
// scheduled and the state is assumed untouched.
func (s *Session) mutateErr(fn func(*entity.UserAppState) error) error {
	s.mu.Lock()
	err := fn(s.state)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.saver.Trigger()
	return nil
}

func (s *Session) User() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *s.user
	return &u
}

func (s *Session) SetUser(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.user = &u
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() *entity.UserAppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// rehydrate folds mirror writes that reached the stored document after the
// last pull into the live state. Counterparties write matches, requests,
// like transitions, and transaction records straight into this user's
// document, so the stored copy can be ahead of the live one.
func (s *Session) rehydrate(ctx context.Context) {
	stored, err := s.stateRepo.Get(ctx, s.userID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			logger.Warn("Failed to refresh state for user %s: %v", s.userID, err)
		}
		return
	}

	s.mu.Lock()
	s.state.MergeMirrored(s.userID, stored)
	s.mu.Unlock()
}

// flush folds the stored document's mirror writes into the live state and
// pushes the merged snapshot back. Writing the raw snapshot would clobber
// anything a counterparty landed since the last pull. Failures are logged
// and dropped; the next mutation reschedules a save.
func (s *Session) flush() {
	ctx := context.Background()
	s.rehydrate(ctx)
	if err := s.stateRepo.Save(ctx, s.userID, s.Snapshot()); err != nil {
		logger.Warn("Failed to save state for user %s: %v", s.userID, err)
	}
}

// SessionManager owns session lifecycle: pull-or-seed on start, debounced
// replication while live, cancel-and-final-flush on end.
type SessionManager struct {
	stateRepo repository.StateRepository
	window    time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(stateRepo repository.StateRepository, window time.Duration) *SessionManager {
	return &SessionManager{
		stateRepo: stateRepo,
		window:    window,
		sessions:  make(map[string]*Session),
	}
}

// Start pulls the user's state document, seeding an empty one on first
// login. Re-starting a live session rehydrates it so mirror writes that
// landed since the initial pull become visible. A store read failure
// degrades to an empty in-memory state with a warning instead of blocking
// the session.
func (m *SessionManager) Start(ctx context.Context, user *entity.User) (*Session, error) {
	m.mu.Lock()
	if existing, ok := m.sessions[user.ID]; ok {
		m.mu.Unlock()
		existing.SetUser(user)
		existing.rehydrate(ctx)
		return existing, nil
	}
	m.mu.Unlock()

	state, err := m.stateRepo.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			state = entity.NewUserAppState()
			if saveErr := m.stateRepo.Save(ctx, user.ID, state); saveErr != nil {
				logger.Warn("Failed to seed state for user %s: %v", user.ID, saveErr)
			}
		} else {
			logger.Warn("Failed to load state for user %s, falling back to empty state: %v", user.ID, err)
			state = entity.NewUserAppState()
		}
	}

	u := *user
	session := &Session{
		userID:    user.ID,
		user:      &u,
		state:     state,
		stateRepo: m.stateRepo,
	}
	session.saver = debounce.New(m.window, session.flush)

	m.mu.Lock()
	m.sessions[user.ID] = session
	m.mu.Unlock()

	logger.Info("Session started for user %s", user.ID)
	return session, nil
}

func (m *SessionManager) Get(userID string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[userID]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.Unauthorized("No active session", nil)
	}
	return session, nil
}

// End cancels any pending debounced save, performs one final synchronous
// flush, and drops the session. Nothing writes after teardown.
func (m *SessionManager) End(ctx context.Context, userID string) error {
	m.mu.Lock()
	session, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if !ok {
		return nil
	}

	session.saver.Cancel()
	session.rehydrate(ctx)
	if err := m.stateRepo.Save(ctx, userID, session.Snapshot()); err != nil {
		logger.Warn("Final flush failed for user %s: %v", userID, err)
	}

	logger.Info("Session ended for user %s", userID)
	return nil
}
