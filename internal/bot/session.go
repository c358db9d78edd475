package bot

import "sync"

// StateKind enumerates the text-capture windows a user can be in.
type StateKind int

const (
	// StateAwaitingNewCategory captures the name for a fresh category.
	StateAwaitingNewCategory StateKind = iota
	// StateAwaitingRename captures the replacement name for OldCategory.
	StateAwaitingRename
)

// State is one pending text-capture operation.
type State struct {
	Kind        StateKind
	OldCategory string
}

// SessionStore tracks at most one pending State per user. Setting a new
// state overwrites any previous one, so stale prompts cannot resurface.
type SessionStore struct {
	mu     sync.Mutex
	states map[int64]State
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{states: make(map[int64]State)}
}

// Set records a pending state for userID, replacing any existing one.
func (s *SessionStore) Set(userID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
}

// Take removes and returns the pending state for userID. The second return
// is false when the user has no pending state.
func (s *SessionStore) Take(userID int64) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[userID]
	if ok {
		delete(s.states, userID)
	}
	return state, ok
}

// Clear drops any pending state for userID.
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
