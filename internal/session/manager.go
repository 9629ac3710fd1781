// Package session keeps parsed keyboards in memory, one per session id.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/layoutforge/backend/internal/kle"
	"github.com/layoutforge/backend/internal/models"
)

// MaxSessions limits concurrent sessions to prevent memory exhaustion.
const MaxSessions = 100

// SessionMaxAge is how long to keep sessions that have not been touched.
const SessionMaxAge = 30 * time.Minute

// State holds a session record together with its parsed keyboard.
type State struct {
	Session      *models.LayoutSession
	Keyboard     *models.Keyboard
	LastAccessed time.Time
}

// Manager handles active layout sessions. Parsing a layout is a small,
// synchronous transformation, so Start returns with the session already
// complete or failed.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
	now      func() time.Time
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*State),
		now:      time.Now,
	}
}

// Start parses raw layout text and stores the result under a fresh session
// id. The returned error is the codec's *DecodeError when parsing fails; no
// session is kept in that case.
func (m *Manager) Start(fileID string, raw string) (*models.LayoutSession, error) {
	start := m.now()

	kb, err := kle.Parse(raw)
	if err != nil {
		return nil, err
	}

	session := &models.LayoutSession{
		ID:               uuid.New().String(),
		FileID:           fileID,
		Status:           models.SessionStatusComplete,
		KeyCount:         len(kb.Keys),
		RowCount:         rowCount(kb),
		HasMetadata:      kb.Metadata != nil,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
	if kb.Metadata != nil && kb.Metadata.Name != nil {
		session.Name = *kb.Metadata.Name
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictOldestLocked()
	m.sessions[session.ID] = &State{
		Session:      session,
		Keyboard:     kb,
		LastAccessed: m.now(),
	}

	return session, nil
}

// Get returns the session record by id.
func (m *Manager) Get(id string) (*models.LayoutSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return state.Session, true
}

// Keyboard returns the parsed keyboard for a session and refreshes its
// last-accessed time.
func (m *Manager) Keyboard(id string) (*models.Keyboard, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	state.LastAccessed = m.now()
	return state.Keyboard, true
}

// Raw returns the canonical raw re-encoding of a session's keyboard.
func (m *Manager) Raw(id string) (string, bool) {
	kb, ok := m.Keyboard(id)
	if !ok {
		return "", false
	}
	return kle.ToRawFormat(kb), true
}

// Touch refreshes a session's last-accessed time.
func (m *Manager) Touch(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return false
	}
	state.LastAccessed = m.now()
	return true
}

// Delete removes a session.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// CleanupOldSessions removes sessions idle for longer than maxAge and
// returns how many were removed.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	removed := 0
	for id, state := range m.sessions {
		if state.LastAccessed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// evictOldestLocked drops the least recently used session when the manager
// is at capacity. Caller must hold the write lock.
func (m *Manager) evictOldestLocked() {
	if len(m.sessions) < MaxSessions {
		return
	}

	oldestID := ""
	var oldest time.Time
	for id, state := range m.sessions {
		if oldestID == "" || state.LastAccessed.Before(oldest) {
			oldestID = id
			oldest = state.LastAccessed
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
	}
}

// rowCount is the number of distinct source rows across the placed keys.
func rowCount(kb *models.Keyboard) int {
	rows := make(map[int]struct{})
	for _, key := range kb.Keys {
		rows[key.Row] = struct{}{}
	}
	return len(rows)
}
