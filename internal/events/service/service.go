package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"keepsake/internal/audit"
	eventmetrics "keepsake/internal/events/metrics"
	"keepsake/internal/events/models"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/requestcontext"
	"keepsake/pkg/timekit"
)

// Collection is the live-update channel name for calendar events.
const Collection = "events"

const maxEmojis = 20

// Store persists event documents keyed by date.
type Store interface {
	Put(ctx context.Context, e *models.Event) error
	Get(ctx context.Context, date string) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Delete(ctx context.Context, date string) error
}

// Notifier wakes live-snapshot subscribers after a mutation.
type Notifier interface {
	Notify(ctx context.Context, collection string)
}

// Service manages the emoji calendar.
type Service struct {
	store     Store
	loc       *time.Location
	weekStart time.Weekday
	notifier  Notifier
	metrics   *eventmetrics.Metrics
	auditor   *audit.Emitter
}

func NewService(store Store, loc *time.Location, weekStart time.Weekday, notifier Notifier, metrics *eventmetrics.Metrics, auditor *audit.Emitter) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, weekStart: weekStart, notifier: notifier, metrics: metrics, auditor: auditor}
}

// Upsert writes the event for a day. An empty record (no emojis, no notes)
// removes the day instead, so clients clear days by saving them empty.
func (s *Service) Upsert(ctx context.Context, date string, req *models.UpsertRequest) (*models.Event, error) {
	if _, err := timekit.ParseDateKey(date, s.loc); err != nil {
		return nil, err
	}
	if len(req.Emojis) > maxEmojis {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "too many emojis for one day")
	}

	emojis := make([]string, 0, len(req.Emojis))
	for _, e := range req.Emojis {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			emojis = append(emojis, trimmed)
		}
	}

	event := &models.Event{
		Date:      date,
		Emojis:    emojis,
		Notes:     strings.TrimSpace(req.Notes),
		UpdatedAt: requestcontext.Now(ctx),
	}

	if event.Empty() {
		if err := s.store.Delete(ctx, date); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear event")
		}
		if s.metrics != nil {
			s.metrics.IncrementCleared()
		}
		s.emit(ctx, "event.cleared", date)
		s.notify(ctx)
		return event, nil
	}

	if err := s.store.Put(ctx, event); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store event")
	}
	if s.metrics != nil {
		s.metrics.IncrementUpserted()
	}
	s.emit(ctx, "event.upserted", date)
	s.notify(ctx)
	return event, nil
}

// Get returns the event for one day.
func (s *Service) Get(ctx context.Context, date string) (*models.Event, error) {
	if _, err := timekit.ParseDateKey(date, s.loc); err != nil {
		return nil, err
	}
	event, err := s.store.Get(ctx, date)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no event on this day")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load event")
	}
	return event, nil
}

// List returns all events ordered by date.
func (s *Service) List(ctx context.Context) ([]*models.Event, error) {
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list events")
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events, nil
}

// Month returns the calendar grid for a month with its events.
func (s *Service) Month(ctx context.Context, year, month int) (*models.MonthView, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid year or month")
	}

	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	views := make([]models.View, 0)
	for _, e := range events {
		if strings.HasPrefix(e.Date, prefix) {
			views = append(views, e.View())
		}
	}

	return &models.MonthView{
		Year:   year,
		Month:  month,
		Cells:  timekit.MonthGrid(year, month, s.weekStart),
		Events: views,
	}, nil
}

// ExportICS renders every event as an all-day VEVENT.
func (s *Service) ExportICS(ctx context.Context) (string, error) {
	events, err := s.List(ctx)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//keepsake//calendar//EN")

	for _, e := range events {
		day, err := timekit.ParseDateKey(e.Date, time.UTC)
		if err != nil {
			continue
		}
		ev := cal.AddEvent("keepsake-" + e.Date)
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ev.SetDtStampTime(e.UpdatedAt)
		summary := strings.Join(e.Emojis, "")
		if summary == "" {
			summary = e.Notes
		}
		ev.SetSummary(summary)
		if e.Notes != "" {
			ev.SetDescription(e.Notes)
		}
	}
	return cal.Serialize(), nil
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
