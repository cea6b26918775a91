package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"keepsake/internal/audit"
	"keepsake/internal/places/geocoder"
	placemetrics "keepsake/internal/places/metrics"
	"keepsake/internal/places/models"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/requestcontext"
)

// Collection is the live-update channel name for places.
const Collection = "places"

const (
	cacheTTL     = time.Hour
	cacheCleanup = 10 * time.Minute
)

// Store persists resolved places.
type Store interface {
	Put(ctx context.Context, p *models.Place) error
	Get(ctx context.Context, slug string) (*models.Place, error)
	List(ctx context.Context) ([]*models.Place, error)
}

// Geocoder resolves free-text places to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, place string) (*geocoder.Result, error)
}

// Notifier wakes live-snapshot subscribers after a mutation.
type Notifier interface {
	Notify(ctx context.Context, collection string)
}

// Service resolves place names through a tiered pipeline: in-process cache,
// persisted store, built-in table, external geocoder. Only positive results
// are cached at any tier.
type Service struct {
	logger   *slog.Logger
	store    Store
	geocoder Geocoder
	cache    *gocache.Cache
	notifier Notifier
	metrics  *placemetrics.Metrics
	auditor  *audit.Emitter
}

func NewService(logger *slog.Logger, store Store, geo Geocoder, notifier Notifier, metrics *placemetrics.Metrics, auditor *audit.Emitter) *Service {
	return &Service{
		logger:   logger,
		store:    store,
		geocoder: geo,
		cache:    gocache.New(cacheTTL, cacheCleanup),
		notifier: notifier,
		metrics:  metrics,
		auditor:  auditor,
	}
}

// Resolve turns a free-text place into a map pin.
func (s *Service) Resolve(ctx context.Context, place string) (*models.Place, error) {
	place = strings.TrimSpace(place)
	slug := models.Slugify(place)
	if slug == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "place is required")
	}

	if cached, ok := s.cache.Get(slug); ok {
		if s.metrics != nil {
			s.metrics.IncrementCacheHits()
		}
		hit := cached.(models.Place)
		return &hit, nil
	}

	if stored, err := s.store.Get(ctx, slug); err == nil {
		if s.metrics != nil {
			s.metrics.IncrementStoreHits()
		}
		s.cache.SetDefault(slug, *stored)
		return stored, nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read place cache")
	}

	if known, ok := wellKnown[slug]; ok {
		s.persist(ctx, &known)
		s.cache.SetDefault(slug, known)
		return &known, nil
	}

	if s.metrics != nil {
		s.metrics.IncrementGeocoderCalls()
	}
	result, err := s.geocoder.Lookup(ctx, place)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			if s.metrics != nil {
				s.metrics.IncrementMisses()
			}
			return nil, dErrors.New(dErrors.CodeNotFound, "place could not be resolved")
		}
		if s.metrics != nil {
			s.metrics.IncrementGeocoderErrors()
		}
		return nil, err
	}

	resolved := &models.Place{
		Slug:      slug,
		Place:     place,
		Lat:       result.Lat,
		Lng:       result.Lng,
		CreatedAt: requestcontext.Now(ctx),
	}
	s.persist(ctx, resolved)
	s.cache.SetDefault(slug, *resolved)
	s.emit(ctx, "place.resolved", slug)
	s.notify(ctx)
	return resolved, nil
}

// List returns every persisted pin for the map view.
func (s *Service) List(ctx context.Context) ([]*models.Place, error) {
	places, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list places")
	}
	sort.Slice(places, func(i, j int) bool { return places[i].Slug < places[j].Slug })
	return places, nil
}

// persist writes through to the store. Failures are logged and swallowed: a
// pin that resolved is still useful this request even if caching it failed.
func (s *Service) persist(ctx context.Context, p *models.Place) {
	if err := s.store.Put(ctx, p); err != nil {
		s.logger.WarnContext(ctx, "failed to persist resolved place",
			"request_id", requestcontext.RequestID(ctx),
			"slug", p.Slug,
			"error", err.Error(),
		)
	}
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
