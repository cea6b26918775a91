package store

import (
	"context"
	"sync"

	"keepsake/internal/events/models"
	"keepsake/pkg/platform/sentinel"
)

// InMemoryStore keeps events in process memory, keyed by date.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string]*models.Event
}

func New() *InMemoryStore {
	return &InMemoryStore{events: make(map[string]*models.Event)}
}

// Put inserts or replaces the event for a day.
func (s *InMemoryStore) Put(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *e
	copied.Emojis = append([]string(nil), e.Emojis...)
	s.events[e.Date] = &copied
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, date string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[date]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *e
	copied.Emojis = append([]string(nil), e.Emojis...)
	return &copied, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Event, 0, len(s.events))
	for _, e := range s.events {
		copied := *e
		copied.Emojis = append([]string(nil), e.Emojis...)
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[date]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.events, date)
	return nil
}
