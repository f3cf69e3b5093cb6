// Package server exposes the dashboard session over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/salarygap/internal/dashboard"
	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/session"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr            string
	EventsBuffer    int
	ShutdownTimeout time.Duration
}

// Event is emitted whenever the session state changes.
type Event struct {
	ID        int64            `json:"id"`
	Type      string           `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Snapshot  session.Snapshot `json:"snapshot"`
}

// Event types.
const (
	EventSelection     = "selection"
	EventOverride      = "override"
	EventClearOverride = "clear_override"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
	Years           int       `json:"years"`
	Jobs            int       `json:"jobs"`
}

// Service serves the HTTP API. Every session event runs under one mutex,
// so each interaction is applied completely before the next starts.
type Service struct {
	cfg    Config
	logger zerolog.Logger

	mu          sync.Mutex
	sess        *session.Manager
	startedAt   time.Time
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service around an initialised session.
func New(logger zerolog.Logger, cfg Config, sess *session.Manager) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	return &Service{
		cfg:       cfg,
		logger:    logger,
		sess:      sess,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Router builds the chi router with every endpoint mounted.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(&s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/domain", s.handleDomain)
		r.Get("/charts/salaries", s.handleSalaryChart)
		r.Get("/charts/costs", s.handleCostChart)
		r.Get("/view", s.handleView)

		r.Get("/state", s.handleState)
		r.Post("/selection", s.handleSelection)
		r.Post("/overrides", s.handleOverride)
		r.Delete("/overrides/{field}", s.handleClearOverride)

		r.Get("/savings", s.handleSavings)
		r.Post("/savings", s.handleComputeSavings)

		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})

	return r
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("graceful shutdown failed")
			return server.Close()
		}
		return nil
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// apply runs fn against the session under the lock and publishes an event
// when it succeeds.
func (s *Service) apply(eventType string, fn func(*session.Manager) error) (session.Snapshot, error) {
	s.mu.Lock()
	if err := fn(s.sess); err != nil {
		s.mu.Unlock()
		return session.Snapshot{}, err
	}
	snap := s.sess.Snapshot()

	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      eventType,
		Timestamp: time.Now(),
		Snapshot:  snap,
	}
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()

	return snap, nil
}

// read runs fn against the session under the lock.
func (s *Service) read(fn func(*session.Manager)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.sess)
}

func (s *Service) dataset() *model.Dataset {
	// Tables are immutable after load and safe to share without the lock.
	return s.sess.Dataset()
}

func (s *Service) status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := s.dataset()
	return Status{
		StartedAt:       s.startedAt,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
		Years:           len(ds.Salaries.Rows),
		Jobs:            len(ds.Salaries.Categories),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// view recomputes the dashboard view for the given cost controls.
func (s *Service) view(cv dashboard.CostView) dashboard.View {
	var v dashboard.View
	s.read(func(m *session.Manager) {
		v = dashboard.Build(m, cv)
	})
	return v
}
