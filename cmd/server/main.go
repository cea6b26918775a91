package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"keepsake/internal/audit"
	authhandler "keepsake/internal/auth/handler"
	authmetrics "keepsake/internal/auth/metrics"
	authservice "keepsake/internal/auth/service"
	sessionstore "keepsake/internal/auth/store/session"
	userstore "keepsake/internal/auth/store/user"
	eventhandler "keepsake/internal/events/handler"
	eventmetrics "keepsake/internal/events/metrics"
	eventservice "keepsake/internal/events/service"
	eventstore "keepsake/internal/events/store"
	jwttoken "keepsake/internal/jwt_token"
	"keepsake/internal/live"
	notehandler "keepsake/internal/notes/handler"
	notemetrics "keepsake/internal/notes/metrics"
	noteservice "keepsake/internal/notes/service"
	notestore "keepsake/internal/notes/store"
	photohandler "keepsake/internal/photos/handler"
	photometrics "keepsake/internal/photos/metrics"
	photoservice "keepsake/internal/photos/service"
	photostore "keepsake/internal/photos/store"
	"keepsake/internal/places/geocoder"
	placehandler "keepsake/internal/places/handler"
	placemetrics "keepsake/internal/places/metrics"
	placeservice "keepsake/internal/places/service"
	placestore "keepsake/internal/places/store"
	"keepsake/internal/platform/config"
	"keepsake/internal/platform/httpserver"
	"keepsake/internal/platform/logger"
	"keepsake/internal/platform/metrics"
	"keepsake/internal/platform/postgres"
	platformredis "keepsake/internal/platform/redis"
	timerhandler "keepsake/internal/timers/handler"
	timermetrics "keepsake/internal/timers/metrics"
	timerservice "keepsake/internal/timers/service"
	timerstore "keepsake/internal/timers/store"
	httptransport "keepsake/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Error("invalid KEEPSAKE_TIMEZONE, falling back to UTC", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open postgres", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("no database configured, using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		log.Warn("no redis configured, live updates stay in-process")
	}

	var publisher audit.Publisher
	if redisClient != nil {
		publisher = audit.NewRedisPublisher(redisClient)
	}
	auditor := audit.NewEmitter(log, publisher)

	hub := live.NewHub(log, redisClient)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "keepsake", "keepsake-app")
	jwtValidator := jwttoken.NewMiddlewareAdapter(jwtService)

	httpMetrics := metrics.New()

	var (
		users    authservice.UserStore    = userstore.New()
		sessions authservice.SessionStore = sessionstore.New()
		timers   timerservice.Store       = timerstore.New()
		notes    noteservice.Store        = notestore.New()
		events   eventservice.Store       = eventstore.New()
		photos   photoservice.Store       = photostore.New()
		places   placeservice.Store       = placestore.New()
	)
	if db != nil {
		users = userstore.NewPostgres(db)
		sessions = sessionstore.NewPostgres(db)
		timers = timerstore.NewPostgres(db)
		notes = notestore.NewPostgres(db)
		events = eventstore.NewPostgres(db)
		photos = photostore.NewPostgres(db)
		places = placestore.NewPostgres(db)
	}

	authSvc := authservice.NewService(users, sessions, jwtService, authmetrics.New(), auditor)
	timerSvc := timerservice.NewService(timers, loc, hub, timermetrics.New(), auditor)
	noteSvc := noteservice.NewService(notes, hub, notemetrics.New(), auditor)
	eventSvc := eventservice.NewService(events, loc, cfg.WeekStart, hub, eventmetrics.New(), auditor)
	photoSvc := photoservice.NewService(photos, loc, hub, photometrics.New(), auditor)
	geo := geocoder.New(cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout)
	placeSvc := placeservice.NewService(log, places, geo, hub, placemetrics.New(), auditor)

	hub.RegisterCollection(timerservice.Collection, func(ctx context.Context) (any, error) {
		return timerSvc.Statuses(ctx)
	})
	hub.RegisterCollection(noteservice.Collection, func(ctx context.Context) (any, error) {
		return noteSvc.List(ctx)
	})
	hub.RegisterCollection(eventservice.Collection, func(ctx context.Context) (any, error) {
		return eventSvc.List(ctx)
	})
	hub.RegisterCollection(photoservice.Collection, func(ctx context.Context) (any, error) {
		return photoSvc.List(ctx)
	})
	hub.RegisterCollection(placeservice.Collection, func(ctx context.Context) (any, error) {
		return placeSvc.List(ctx)
	})

	router := httptransport.NewRouter(
		authhandler.New(authSvc, log, httpMetrics, jwtValidator),
		timerhandler.New(timerSvc, log, httpMetrics, loc, jwtValidator),
		notehandler.New(noteSvc, log, httpMetrics, jwtValidator),
		eventhandler.New(eventSvc, log, httpMetrics, jwtValidator),
		photohandler.New(photoSvc, log, httpMetrics, jwtValidator),
		placehandler.New(placeSvc, log, httpMetrics, jwtValidator),
		live.NewHandler(hub, log, jwtValidator),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting keepsake", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
