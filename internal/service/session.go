package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"propchat/internal/model"
)

// Session is one conversation's process-local state. Turns on the same
// session are serialized by its mutex: BeginTurn takes the lock for
// the whole turn and EndTurn releases it, so concurrent requests for
// one conversation apply in arrival order.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	updatedAt time.Time
	filter    *model.EffectiveFilter
	last      *model.MatchResult
	turns     []model.TurnRecord
}

func newSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		updatedAt: now,
	}
}

// BeginTurn locks the session and returns the filter in effect before
// this turn. Every BeginTurn must be paired with EndTurn.
func (s *Session) BeginTurn() *model.EffectiveFilter {
	s.mu.Lock()
	return s.filter
}

// EndTurn releases the turn lock.
func (s *Session) EndTurn() {
	s.mu.Unlock()
}

// CompleteTurn records a finished turn: the new effective filter, its
// match result and a history entry. The caller must hold the turn
// lock. History is capped at limit entries, oldest first out.
func (s *Session) CompleteTurn(utterance string, filter *model.EffectiveFilter, result *model.MatchResult, parseFailed bool, limit int) {
	s.filter = filter
	s.last = result
	s.updatedAt = time.Now()

	s.turns = append(s.turns, model.TurnRecord{
		Utterance:   utterance,
		Filter:      *filter,
		MatchCount:  result.Count,
		ParseFailed: parseFailed,
		At:          s.updatedAt,
	})
	if limit > 0 && len(s.turns) > limit {
		s.turns = append([]model.TurnRecord(nil), s.turns[len(s.turns)-limit:]...)
	}
}

// LastResult returns the match result of the most recent turn, or nil
// before the first turn. The caller must hold the turn lock.
func (s *Session) LastResult() *model.MatchResult {
	return s.last
}

// Filter returns the session's current effective filter, or nil before
// the first turn.
func (s *Session) Filter() *model.EffectiveFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Snapshot returns a point-in-time view of the session. It waits for
// any in-flight turn to finish.
func (s *Session) Snapshot() model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := model.SessionSnapshot{
		SessionID: s.ID,
		Turns:     append([]model.TurnRecord(nil), s.turns...),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
	if s.filter != nil {
		snapshot.Filter = *s.filter
	}
	if s.last != nil {
		snapshot.MatchCount = s.last.Count
	}
	return snapshot
}

// Reset clears the session's filter, result and history but keeps the
// session itself alive.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = nil
	s.last = nil
	s.turns = nil
	s.updatedAt = time.Now()
}

// SessionManager owns all live sessions in the process.
type SessionManager struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	historyLimit int
}

// NewSessionManager creates a new session manager
func NewSessionManager(historyLimit int) *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*Session),
		historyLimit: historyLimit,
	}
}

// GetOrCreate returns the session with the given ID, or mints a fresh
// one when the ID is empty or unknown. Callers read the authoritative
// ID back from the returned session.
func (m *SessionManager) GetOrCreate(id string) *Session {
	if id != "" {
		m.mu.RLock()
		session, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			return session
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" {
		if session, ok := m.sessions[id]; ok {
			return session
		}
	}
	session := newSession()
	m.sessions[session.ID] = session
	return session
}

// Get returns the session with the given ID, or nil.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Delete removes a session. It reports whether the session existed.
func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// HistoryLimit returns the per-session turn history cap.
func (m *SessionManager) HistoryLimit() int {
	return m.historyLimit
}
