package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/domain"
)

var (
	// ErrSubmissionInFlight is returned when a submit arrives while one is pending
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrAlreadySubmitted is returned once the order has been confirmed
	ErrAlreadySubmitted = errors.New("order already submitted")
)

// Session holds the form state of one loaded order page
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	state    *domain.FormState
	lastSeen time.Time
}

// View returns the current render state
func (s *Session) View() domain.FormView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.View()
}

// Update applies fn to the form state under the session lock
func (s *Session) Update(fn func(*domain.FormState) error) (domain.FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.state)
	return s.state.View(), err
}

// BeginSubmit moves the form to Submitting. Only one submission may be pending.
func (s *Session) BeginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state.Submission {
	case domain.SubmissionStateSubmitting:
		return ErrSubmissionInFlight
	case domain.SubmissionStateConfirmed:
		return ErrAlreadySubmitted
	}
	return s.state.Transition(domain.SubmissionStateSubmitting)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Store keeps sessions in memory. Nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewStore creates a store that forgets sessions idle longer than ttl
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create starts a new session with a freshly loaded form
func (st *Store) Create() *Session {
	s := &Session{
		ID:       uuid.New(),
		state:    domain.NewFormState(),
		lastSeen: st.now(),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns a live session and marks it as used
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := st.now()
	if s.idleSince(now) > st.ttl {
		st.remove(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// Lookup parses a raw session id and returns the session, creating one when
// the id is missing, malformed or expired. The bool reports a new session.
func (st *Store) Lookup(raw string) (*Session, bool) {
	if id, err := uuid.Parse(raw); err == nil {
		if s, ok := st.Get(id); ok {
			return s, false
		}
	}
	return st.Create(), true
}

// Delete drops a session
func (st *Store) Delete(id uuid.UUID) {
	st.remove(id)
}

// Len returns the number of tracked sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were dropped
func (st *Store) Sweep() int {
	now := st.now()

	st.mu.RLock()
	expired := make([]uuid.UUID, 0)
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			expired = append(expired, id)
		}
	}
	st.mu.RUnlock()

	for _, id := range expired {
		st.remove(id)
	}
	return len(expired)
}

// Run sweeps on every interval until ctx is cancelled
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				st.logger.Debug("Swept expired sessions", zap.Int("count", n), zap.Int("remaining", st.Len()))
			}
		}
	}
}

func (st *Store) remove(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
