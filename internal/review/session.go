package review

import (
	"errors"
	"sync"
	"time"

	"github.com/avelar/memora/internal/models"
	"github.com/google/uuid"
)

// Sentinel errors for session handling. Check with errors.Is.
var (
	ErrSessionNotFound  = errors.New("review: session not found")
	ErrSessionCompleted = errors.New("review: session already completed")
	ErrEmptyPlan        = errors.New("review: no due cards to start a session")
)

// SessionState is the finite session state machine consumed by the UI.
type SessionState int

const (
	NotStarted SessionState = iota
	InProgress
	Completed
)

var sessionStateNames = [...]string{
	NotStarted: "not_started",
	InProgress: "in_progress",
	Completed:  "completed",
}

func (s SessionState) String() string {
	if s >= NotStarted && s <= Completed {
		return sessionStateNames[s]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session is one review sitting: an immutable ordered plan of cards, a cursor
// into it, and a start timestamp. The live due set may keep changing while
// the session runs, but the plan snapshot never grows mid-session. Sessions
// are ephemeral; abandoning one discards only the plan, never rated progress.
type Session struct {
	ID        string
	LearnerID int64
	ProjectID int64 // 0 when the session spans all projects
	Plan      []models.ReviewCard
	Cursor    int
	State     SessionState
	StartedAt time.Time
}

// Current returns the card at the cursor, or nil when the session is done.
func (s *Session) Current() *models.ReviewCard {
	if s.State != InProgress || s.Cursor >= len(s.Plan) {
		return nil
	}
	card := s.Plan[s.Cursor]
	return &card
}

// Remaining returns the number of cards left, including the current one.
func (s *Session) Remaining() int {
	if s.Cursor >= len(s.Plan) {
		return 0
	}
	return len(s.Plan) - s.Cursor
}

// advance moves the cursor past the current card, completing the session when
// the plan is exhausted.
func (s *Session) advance() {
	s.Cursor++
	if s.Cursor >= len(s.Plan) {
		s.State = Completed
	}
}

// Manager tracks in-memory sessions, one active sitting per learner. Session
// state is per-learner and never shared across processes; no cross-session
// coordination exists or is needed.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	byLearner map[int64]string
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		byLearner: make(map[int64]string),
	}
}

// Start snapshots the given due cards into a new InProgress session for the
// learner, replacing any abandoned previous sitting. The cards must already
// be ordered; Start copies them so later mutations cannot grow the plan.
func (m *Manager) Start(learnerID, projectID int64, cards []models.ReviewCard, now time.Time) (*Session, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyPlan
	}

	plan := make([]models.ReviewCard, len(cards))
	copy(plan, cards)

	sess := &Session{
		ID:        uuid.NewString(),
		LearnerID: learnerID,
		ProjectID: projectID,
		Plan:      plan,
		State:     InProgress,
		StartedAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.byLearner[learnerID]; ok {
		delete(m.sessions, old)
	}
	m.sessions[sess.ID] = sess
	m.byLearner[learnerID] = sess.ID
	return snapshot(sess), nil
}

// Get returns a copy of the session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(sess), nil
}

// Advance records that the current card was answered and moves the cursor.
// It returns the updated session; rated cards were already durably updated by
// the scheduler, so no recall progress is at stake here.
func (m *Manager) Advance(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.State == Completed {
		return nil, ErrSessionCompleted
	}
	sess.advance()
	return snapshot(sess), nil
}

// Abandon discards the session plan. Not an error if already gone.
func (m *Manager) Abandon(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		delete(m.byLearner, sess.LearnerID)
		delete(m.sessions, id)
	}
}

func snapshot(sess *Session) *Session {
	out := *sess
	out.Plan = make([]models.ReviewCard, len(sess.Plan))
	copy(out.Plan, sess.Plan)
	return &out
}
