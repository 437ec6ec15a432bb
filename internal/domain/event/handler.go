package event

import (
	"sync"

	"go.uber.org/zap"
)

// LoggingHandler logs all events
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a new LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingHandler) Handle(event DomainEvent) error {
	switch e := event.(type) {
	case CacheRefreshed:
		h.logger.Debug("cache refreshed",
			zap.String("kind", e.Kind),
			zap.String("scope", e.Scope),
			zap.String("origin", e.Origin),
			zap.Int("count", e.Count),
			zap.Bool("late", e.Late),
		)
	case CacheInvalidated:
		h.logger.Debug("cache invalidated",
			zap.String("kind", e.Kind),
			zap.Strings("scopes", e.Scopes),
			zap.String("reason", e.Reason),
		)
	case RemoteFetchFailed:
		level := h.logger.Debug
		if e.Fatal {
			level = h.logger.Warn
		}
		level("remote fetch failed",
			zap.String("kind", e.Kind),
			zap.String("scope", e.Scope),
			zap.String("error", e.Error),
		)
	case SyncCompleted:
		h.logger.Info("sync completed",
			zap.Int("projects", e.Projects),
			zap.Int("events", e.Events),
			zap.Bool("failed", e.Failed),
			zap.Duration("duration", e.Duration),
		)
	default:
		h.logger.Debug("domain event",
			zap.String("event", event.EventName()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
	return nil
}

// HandledEvents returns the events this handler handles
func (h *LoggingHandler) HandledEvents() []string {
	return []string{"*"} // Handle all events
}

// MetricsHandler collects counters from events
type MetricsHandler struct {
	mu             sync.Mutex
	localRefreshes int64
	remoteRefresh  int64
	lateRefreshes  int64
	invalidations  int64
	remoteFailures int64
	syncRuns       int64
	syncFailures   int64
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// Handle updates metrics based on the event
func (h *MetricsHandler) Handle(event DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch e := event.(type) {
	case CacheRefreshed:
		if e.Origin == OriginLocal {
			h.localRefreshes++
		} else {
			h.remoteRefresh++
		}
		if e.Late {
			h.lateRefreshes++
		}
	case CacheInvalidated:
		h.invalidations++
	case RemoteFetchFailed:
		h.remoteFailures++
	case SyncCompleted:
		h.syncRuns++
		if e.Failed {
			h.syncFailures++
		}
	}
	return nil
}

// HandledEvents returns the events this handler handles
func (h *MetricsHandler) HandledEvents() []string {
	return []string{
		NameCacheRefreshed,
		NameCacheInvalidated,
		NameRemoteFetchFailed,
		NameSyncCompleted,
	}
}

// GetMetrics returns current metrics
func (h *MetricsHandler) GetMetrics() map[string]int64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	return map[string]int64{
		"refreshes_local":  h.localRefreshes,
		"refreshes_remote": h.remoteRefresh,
		"refreshes_late":   h.lateRefreshes,
		"invalidations":    h.invalidations,
		"remote_failures":  h.remoteFailures,
		"sync_runs":        h.syncRuns,
		"sync_failures":    h.syncFailures,
	}
}
