package session

import (
	"sync"
)

// Store holds snapshots of flight sessions for the observer surfaces. It is
// the only session data shared across connections; handlers publish copies
// into it and observers read copies out of it, so callers never share a
// *SessionState.
//
// A reconnect with the same airplane ID is a brand-new session and replaces
// the previous snapshot.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*SessionState
	handled  int
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*SessionState),
	}
}

func (s *Store) Get(id string) (*SessionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return st.Clone(), true
}

func (s *Store) GetAll() []*SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*SessionState, 0, len(s.sessions))
	for _, st := range s.sessions {
		result = append(result, st.Clone())
	}
	return result
}

// Update stores a copy of state, replacing any previous snapshot for the
// same ID. When state transitions to Done the completed-flight counter is
// bumped.
func (s *Store) Update(state *SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.sessions[state.ID]; state.Done && (!ok || !prev.Done) {
		s.handled++
	}
	s.sessions[state.ID] = state.Clone()
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// ActiveCount reports sessions whose connection is still open.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, st := range s.sessions {
		if !st.Done {
			count++
		}
	}
	return count
}

// HandledCount reports how many sessions have run to completion since start.
func (s *Store) HandledCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handled
}
