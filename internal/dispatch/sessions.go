package dispatch

import (
	"sync"

	"telegram-todo-bot/internal/models"
)

// Sessions maps user ids to their active dialog state. State is
// process-local only: it has to survive across webhook invocations, not
// restarts. Concurrent messages for the same user resolve last-write-wins.
type Sessions struct {
	mu sync.Mutex
	m  map[string]*models.DialogState
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]*models.DialogState)}
}

func (s *Sessions) Get(userID string) *models.DialogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[userID]
}

func (s *Sessions) Set(userID string, st *models.DialogState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[userID] = st
}

func (s *Sessions) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}
