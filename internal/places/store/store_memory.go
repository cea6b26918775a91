package store

import (
	"context"
	"sync"

	"keepsake/internal/places/models"
	"keepsake/pkg/platform/sentinel"
)

// InMemoryStore keeps resolved places in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	places map[string]*models.Place
}

func New() *InMemoryStore {
	return &InMemoryStore{places: make(map[string]*models.Place)}
}

// Put inserts or overwrites a resolved place. Racing writers both succeed;
// the row is idempotent either way.
func (s *InMemoryStore) Put(_ context.Context, p *models.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *p
	s.places[p.Slug] = &copied
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, slug string) (*models.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.places[slug]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Place, 0, len(s.places))
	for _, p := range s.places {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}
