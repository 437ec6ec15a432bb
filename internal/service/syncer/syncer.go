package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/domain/event"
	"github.com/eeese/showcase/internal/port"
	"github.com/eeese/showcase/internal/util/ratelimiter"
)

var ErrAlreadyRunning = errors.New("syncer already running")

// Config contains syncer configuration
type Config struct {
	// Interval between scheduled syncs
	Interval time.Duration
	// TriggerInterval is the minimum time between out-of-band syncs
	TriggerInterval time.Duration
	// SyncEvents also refreshes events; projects are always refreshed
	SyncEvents bool
	// Dispatcher receives SyncCompleted events. Nil disables them.
	Dispatcher event.EventDispatcher
}

// DefaultConfig returns default syncer configuration
func DefaultConfig() *Config {
	return &Config{
		Interval:        15 * time.Minute,
		TriggerInterval: 30 * time.Second,
		SyncEvents:      true,
	}
}

// Result summarises one sync run
type Result struct {
	Projects int
	Events   int
	Duration time.Duration
}

// Syncer periodically force-refreshes the catalog through the repositories,
// so every run writes through to the local store and refreshes the cache.
type Syncer struct {
	config     *Config
	projects   port.ProjectSource
	events     port.EventSource
	dispatcher event.EventDispatcher
	limiter    *ratelimiter.Limiter
	logger     *zap.Logger
	trigger    chan struct{}

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a new Syncer. events may be nil when only projects are synced.
func New(cfg *Config, projects port.ProjectSource, events port.EventSource, logger *zap.Logger) *Syncer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dispatcher := cfg.Dispatcher
	if dispatcher == nil {
		dispatcher = event.NewNullDispatcher()
	}

	return &Syncer{
		config:     cfg,
		projects:   projects,
		events:     events,
		dispatcher: dispatcher,
		limiter:    ratelimiter.New(cfg.TriggerInterval),
		logger:     logger,
		trigger:    make(chan struct{}, 1),
	}
}

// Start runs an initial sync and then syncs every Interval until ctx is
// cancelled or Stop is called. A retryable failure reschedules the next run
// after the delay the backend asked for.
func (s *Syncer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.cancel = nil
		s.mu.Unlock()
	}()

	s.logger.Info("syncer started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("sync_events", s.config.SyncEvents))

	timer := time.NewTimer(s.runOnce(ctx))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("syncer stopped")
			return nil
		case <-timer.C:
		case <-s.trigger:
			s.logger.Debug("out-of-band sync triggered")
		}
		timer.Reset(s.runOnce(ctx))
	}
}

// Stop stops the sync loop
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
}

// Running reports whether the sync loop is active
func (s *Syncer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Trigger requests an out-of-band sync of the running loop. It returns false
// and the remaining wait when called again within TriggerInterval.
func (s *Syncer) Trigger() (bool, time.Duration) {
	allowed, wait := s.limiter.Allow("sync")
	if !allowed {
		return false, wait
	}

	select {
	case s.trigger <- struct{}{}:
	default:
		// A sync is already pending
	}
	return true, 0
}

// runOnce syncs and returns the delay before the next scheduled run
func (s *Syncer) runOnce(ctx context.Context) time.Duration {
	_, err := s.SyncNow(ctx)
	if err == nil || ctx.Err() != nil {
		return s.config.Interval
	}

	if retryAfter, ok := domain.GetRetryAfter(err); ok && retryAfter > 0 {
		s.logger.Warn("sync throttled by backend, rescheduling",
			zap.Duration("retry_after", retryAfter),
			zap.Error(err))
		return retryAfter
	}

	s.logger.Error("sync failed", zap.Error(err))
	return s.config.Interval
}

// SyncNow force-refreshes projects and, when enabled, events concurrently
func (s *Syncer) SyncNow(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.projects.GetProjects(gctx, true)
		if err != nil {
			return err
		}
		result.Projects = len(projects)
		return nil
	})
	if s.config.SyncEvents && s.events != nil {
		g.Go(func() error {
			events, err := s.events.GetEvents(gctx, true)
			if err != nil {
				return err
			}
			result.Events = len(events)
			return nil
		})
	}

	err := g.Wait()
	result.Duration = time.Since(start)
	s.dispatcher.Dispatch(event.NewSyncCompleted(result.Projects, result.Events, err != nil, result.Duration))
	if err != nil {
		return result, err
	}

	s.logger.Info("sync completed",
		zap.Duration("duration", result.Duration),
		zap.Int("projects", result.Projects),
		zap.Int("events", result.Events))
	return result, nil
}
