package order

import (
	"sync"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
)

// SessionStore keeps the in-memory table sessions, keyed by table id. One UI
// session owns the store; the lock only guards against the poller and the
// event subscriber touching it from their own goroutines.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	logger   aqm.Logger
}

func NewSessionStore(logger aqm.Logger) *SessionStore {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		logger:   logger,
	}
}

func (st *SessionStore) Get(tableID uuid.UUID) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[tableID]
}

// Ensure returns the session for a table, synthesizing a stub when the floor
// source has not described the table yet. Missing detail must never take the
// board down mid-service.
func (st *SessionStore) Ensure(tableID uuid.UUID) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[tableID]; ok {
		return s
	}
	st.logger.Debug("synthesizing stub session for unknown table", "table_id", tableID.String())
	s := NewSession(tableID, "Table", "")
	st.sessions[tableID] = s
	return s
}

func (st *SessionStore) Set(s *Session) {
	if s == nil {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.TableID] = s
}

// Occupied returns the sessions with a seated party, one table order each.
func (st *SessionStore) Occupied() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		if s.Occupied() {
			out = append(out, s)
		}
	}
	return out
}

func (st *SessionStore) All() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s)
	}
	return out
}

func (st *SessionStore) Remove(tableID uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, tableID)
}

func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
