package store

import (
	"context"
	"sync"

	"keepsake/internal/photos/models"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
)

// InMemoryStore keeps photo records in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	photos map[id.PhotoID]*models.Photo
}

func New() *InMemoryStore {
	return &InMemoryStore{photos: make(map[id.PhotoID]*models.Photo)}
}

// Put inserts or replaces a photo record.
func (s *InMemoryStore) Put(_ context.Context, p *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *p
	s.photos[p.ID] = &copied
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, photoID id.PhotoID) (*models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[photoID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Photo, 0, len(s.photos))
	for _, p := range s.photos {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, photoID id.PhotoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[photoID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.photos, photoID)
	return nil
}
