package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"keepsake/internal/audit"
	timermetrics "keepsake/internal/timers/metrics"
	"keepsake/internal/timers/models"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/requestcontext"
	"keepsake/pkg/timekit"
)

// Collection is the live-update channel name for timers.
const Collection = "timers"

// Store persists timer documents.
type Store interface {
	Put(ctx context.Context, t *models.Timer) error
	Get(ctx context.Context, timerID id.TimerID) (*models.Timer, error)
	List(ctx context.Context) ([]*models.Timer, error)
	Delete(ctx context.Context, timerID id.TimerID) error
}

// Notifier wakes live-snapshot subscribers after a mutation.
type Notifier interface {
	Notify(ctx context.Context, collection string)
}

// Service manages timer documents and computes their current values.
type Service struct {
	store    Store
	loc      *time.Location
	notifier Notifier
	metrics  *timermetrics.Metrics
	auditor  *audit.Emitter
}

func NewService(store Store, loc *time.Location, notifier Notifier, metrics *timermetrics.Metrics, auditor *audit.Emitter) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, notifier: notifier, metrics: metrics, auditor: auditor}
}

// Create stores a new timer.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.Timer, error) {
	if !req.Kind.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "kind must be elapsed or countdown")
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "label is required")
	}
	day, err := timekit.ParseDateKey(req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	timer := &models.Timer{
		ID:        id.TimerID(uuid.New()),
		Kind:      req.Kind,
		Label:     label,
		Date:      day,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, timer); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store timer")
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	s.emit(ctx, "timer.created", timer.ID.String())
	s.notify(ctx)
	return timer, nil
}

// Update replaces a timer's label and date. Kind is immutable: a countdown
// that reaches zero should be deleted, not flipped.
func (s *Service) Update(ctx context.Context, timerID id.TimerID, req *models.UpdateRequest) (*models.Timer, error) {
	timer, err := s.store.Get(ctx, timerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "timer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load timer")
	}

	if label := strings.TrimSpace(req.Label); label != "" {
		timer.Label = label
	}
	if req.Date != "" {
		day, err := timekit.ParseDateKey(req.Date, s.loc)
		if err != nil {
			return nil, err
		}
		timer.Date = day
	}
	timer.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Put(ctx, timer); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store timer")
	}
	s.emit(ctx, "timer.updated", timer.ID.String())
	s.notify(ctx)
	return timer, nil
}

// Delete removes a timer.
func (s *Service) Delete(ctx context.Context, timerID id.TimerID) error {
	if err := s.store.Delete(ctx, timerID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "timer not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete timer")
	}
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	s.emit(ctx, "timer.deleted", timerID.String())
	s.notify(ctx)
	return nil
}

// List returns all timers, oldest anchor date first.
func (s *Service) List(ctx context.Context) ([]*models.Timer, error) {
	timers, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list timers")
	}
	sort.Slice(timers, func(i, j int) bool { return timers[i].Date.Before(timers[j].Date) })
	return timers, nil
}

// Statuses returns every timer with its value at the request's now.
func (s *Service) Statuses(ctx context.Context) ([]models.Status, error) {
	timers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	// Elapsed math compares calendar dates, so now must be read in the same
	// reference zone the anchor dates live in.
	now := requestcontext.Now(ctx).In(s.loc)

	statuses := make([]models.Status, 0, len(timers))
	for _, t := range timers {
		st := models.Status{View: t.View(s.loc)}
		switch t.Kind {
		case models.KindElapsed:
			e := timekit.ElapsedBetween(t.Date, now)
			st.Elapsed = &e
		case models.KindCountdown:
			c := timekit.CountdownTo(t.Date, now)
			st.Countdown = &c
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
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
