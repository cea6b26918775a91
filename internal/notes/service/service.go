package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"keepsake/internal/audit"
	notemetrics "keepsake/internal/notes/metrics"
	"keepsake/internal/notes/models"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/requestcontext"
)

// Collection is the live-update channel name for notes.
const Collection = "notes"

const maxContentLength = 10000

// Store persists note documents.
type Store interface {
	Put(ctx context.Context, n *models.Note) error
	Get(ctx context.Context, noteID id.NoteID) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	Delete(ctx context.Context, noteID id.NoteID) error
}

// Notifier wakes live-snapshot subscribers after a mutation.
type Notifier interface {
	Notify(ctx context.Context, collection string)
}

// Service manages the shared notes feed.
type Service struct {
	store    Store
	notifier Notifier
	metrics  *notemetrics.Metrics
	auditor  *audit.Emitter
}

func NewService(store Store, notifier Notifier, metrics *notemetrics.Metrics, auditor *audit.Emitter) *Service {
	return &Service{store: store, notifier: notifier, metrics: metrics, auditor: auditor}
}

// Create appends a note to the feed.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.Note, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "content is required")
	}
	if len(content) > maxContentLength {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "content is too long")
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "author is required")
	}

	note := &models.Note{
		ID:          id.NoteID(uuid.New()),
		Content:     content,
		Author:      author,
		AuthorPhoto: strings.TrimSpace(req.AuthorPhoto),
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Put(ctx, note); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store note")
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	s.emit(ctx, "note.created", note.ID.String())
	s.notify(ctx)
	return note, nil
}

// List returns the feed: pinned notes first, then newest first within each
// half.
func (s *Service) List(ctx context.Context) ([]*models.Note, error) {
	notes, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notes")
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

// SetPinned pins or unpins a note.
func (s *Service) SetPinned(ctx context.Context, noteID id.NoteID, pinned bool) (*models.Note, error) {
	note, err := s.store.Get(ctx, noteID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "note not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load note")
	}

	note.Pinned = pinned
	if err := s.store.Put(ctx, note); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store note")
	}
	s.emit(ctx, "note.pinned", note.ID.String())
	s.notify(ctx)
	return note, nil
}

// Delete removes a note from the feed.
func (s *Service) Delete(ctx context.Context, noteID id.NoteID) error {
	if err := s.store.Delete(ctx, noteID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "note not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete note")
	}
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	s.emit(ctx, "note.deleted", noteID.String())
	s.notify(ctx)
	return nil
}

func (s *Service) notify(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, Collection)
	}
}

func (s *Service) emit(ctx context.Context, action, subject string) {
	if s.auditor != nil {
		s.auditor.Emit(ctx, action, Collection, subject)
	}
}
