package memory

import (
	"context"
	"sync"
	"time"

	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

type entry struct {
	state     model.ConversationState
	expiresAt time.Time
}

// StateRepo keeps conversation state in process memory. It is lost on
// restart. Expired entries read as idle and are removed by Sweep.
type StateRepo struct {
	mu  sync.Mutex
	m   map[int64]entry
	ttl time.Duration
	now func() time.Time
}

func NewStateRepo(ttl time.Duration) *StateRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &StateRepo{m: make(map[int64]entry), ttl: ttl, now: time.Now}
}

func (s *StateRepo) SetState(_ context.Context, tgID int64, state *model.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state.IsIdle() {
		delete(s.m, tgID)
		return nil
	}
	s.m[tgID] = entry{state: *state, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *StateRepo) GetState(_ context.Context, tgID int64) (*model.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[tgID]
	if !ok || !s.now().Before(e.expiresAt) {
		return model.IdleState(), nil
	}
	st := e.state
	return &st, nil
}

func (s *StateRepo) ClearState(_ context.Context, tgID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, tgID)
	return nil
}

// Sweep drops expired entries and returns how many are still active.
func (s *StateRepo) Sweep(context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.m {
		if !now.Before(e.expiresAt) {
			delete(s.m, id)
		}
	}
	return len(s.m)
}
