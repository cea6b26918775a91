package store

import (
	"context"
	"sync"

	"keepsake/internal/timers/models"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
)

// InMemoryStore keeps timers in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	timers map[id.TimerID]*models.Timer
}

func New() *InMemoryStore {
	return &InMemoryStore{timers: make(map[id.TimerID]*models.Timer)}
}

// Put inserts or replaces a timer.
func (s *InMemoryStore) Put(_ context.Context, t *models.Timer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *t
	s.timers[t.ID] = &copied
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, timerID id.TimerID) (*models.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.timers[timerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Timer, 0, len(s.timers))
	for _, t := range s.timers {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, timerID id.TimerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timers[timerID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.timers, timerID)
	return nil
}
