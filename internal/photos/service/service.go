package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"keepsake/internal/audit"
	photometrics "keepsake/internal/photos/metrics"
	"keepsake/internal/photos/models"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/requestcontext"
	"keepsake/pkg/timekit"
)

// Collection is the live-update channel name for photos.
const Collection = "photos"

// Store persists photo documents.
type Store interface {
	Put(ctx context.Context, p *models.Photo) error
	Get(ctx context.Context, photoID id.PhotoID) (*models.Photo, error)
	List(ctx context.Context) ([]*models.Photo, error)
	Delete(ctx context.Context, photoID id.PhotoID) error
}

// Notifier wakes live-snapshot subscribers after a mutation.
type Notifier interface {
	Notify(ctx context.Context, collection string)
}

// Service manages gallery metadata and its grouped views.
type Service struct {
	store    Store
	loc      *time.Location
	notifier Notifier
	metrics  *photometrics.Metrics
	auditor  *audit.Emitter
}

func NewService(store Store, loc *time.Location, notifier Notifier, metrics *photometrics.Metrics, auditor *audit.Emitter) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, notifier: notifier, metrics: metrics, auditor: auditor}
}

// Create stores a photo record. TakenAt is derived from the date and the
// optional time of day, defaulting to noon so date-only photos sort into the
// middle of their day.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.Photo, error) {
	if !govalidator.IsURL(req.URL) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a valid url is required")
	}
	if strings.TrimSpace(req.Path) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "path is required")
	}

	takenAt, err := timekit.CombineDateTime(req.Date, req.Time, s.loc)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		ID:       id.PhotoID(uuid.New()),
		URL:      req.URL,
		Path:     req.Path,
		Caption:  strings.TrimSpace(req.Caption),
		Date:     req.Date,
		Place:    strings.TrimSpace(req.Place),
		Time:     req.Time,
		TakenAt:  takenAt,
		Uploaded: requestcontext.Now(ctx),
	}
	if err := s.store.Put(ctx, photo); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store photo")
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	s.emit(ctx, "photo.created", photo.ID.String())
	s.notify(ctx)
	return photo, nil
}

// Update changes a photo's caption or place. Nil fields are left untouched.
func (s *Service) Update(ctx context.Context, photoID id.PhotoID, req *models.UpdateRequest) (*models.Photo, error) {
	photo, err := s.store.Get(ctx, photoID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "photo not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load photo")
	}

	if req.Caption != nil {
		photo.Caption = strings.TrimSpace(*req.Caption)
	}
	if req.Place != nil {
		photo.Place = strings.TrimSpace(*req.Place)
	}

	if err := s.store.Put(ctx, photo); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store photo")
	}
	s.emit(ctx, "photo.updated", photo.ID.String())
	s.notify(ctx)
	return photo, nil
}

// Delete removes a photo record. The stored object is not touched.
func (s *Service) Delete(ctx context.Context, photoID id.PhotoID) error {
	if err := s.store.Delete(ctx, photoID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "photo not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete photo")
	}
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	s.emit(ctx, "photo.deleted", photoID.String())
	s.notify(ctx)
	return nil
}

// List returns all photos in chronological order.
func (s *Service) List(ctx context.Context) ([]*models.Photo, error) {
	photos, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list photos")
	}
	sort.SliceStable(photos, func(i, j int) bool { return photos[i].TakenAt.Before(photos[j].TakenAt) })
	return photos, nil
}

// ByDate groups the chronological gallery into days.
func (s *Service) ByDate(ctx context.Context) ([]models.DateGroup, error) {
	photos, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	groups := timekit.GroupBy(photos, func(p *models.Photo) string { return p.Date })
	out := make([]models.DateGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.DateGroup{Date: g.Key, Photos: views(g.Records)})
	}
	return out, nil
}

// ByPlace groups photos by city. The grouping key is case-folded so cosmetic
// spelling differences collapse; the displayed name is the first one seen.
func (s *Service) ByPlace(ctx context.Context) ([]models.PlaceGroup, error) {
	photos, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	located := make([]*models.Photo, 0, len(photos))
	for _, p := range photos {
		if p.Place != "" {
			located = append(located, p)
		}
	}

	display := make(map[string]string)
	groups := timekit.GroupBy(located, func(p *models.Photo) string {
		key, name := timekit.CityOf(p.Place)
		if _, seen := display[key]; !seen {
			display[key] = name
		}
		return key
	})

	out := make([]models.PlaceGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.PlaceGroup{Place: display[g.Key], Photos: views(g.Records)})
	}
	return out, nil
}

func views(photos []*models.Photo) []models.View {
	out := make([]models.View, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.View())
	}
	return out
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
