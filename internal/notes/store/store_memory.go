package store

import (
	"context"
	"sync"

	"keepsake/internal/notes/models"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
)

// InMemoryStore keeps notes in process memory.
type InMemoryStore struct {
	mu    sync.RWMutex
	notes map[id.NoteID]*models.Note
}

func New() *InMemoryStore {
	return &InMemoryStore{notes: make(map[id.NoteID]*models.Note)}
}

// Put inserts or replaces a note.
func (s *InMemoryStore) Put(_ context.Context, n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *n
	s.notes[n.ID] = &copied
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, noteID id.NoteID) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[noteID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		copied := *n
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, noteID id.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[noteID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.notes, noteID)
	return nil
}
