package event

import (
	"time"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	// EventName returns the name of the event
	EventName() string
	// OccurredAt returns when the event occurred
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// Event names
const (
	NameCacheRefreshed    = "cache.refreshed"
	NameCacheInvalidated  = "cache.invalidated"
	NameRemoteFetchFailed = "remote.fetch_failed"
	NameSyncCompleted     = "sync.completed"
)

// Fetch origins reported by CacheRefreshed
const (
	OriginLocal  = "local"
	OriginRemote = "remote"
)

// CacheRefreshed is raised when a fetch result is applied to the cache
type CacheRefreshed struct {
	BaseEvent
	Kind   string // "projects" or "events"
	Scope  string
	Origin string
	Count  int
	Late   bool // remote result that arrived after a local win
}

// EventName returns the event name
func (e CacheRefreshed) EventName() string {
	return NameCacheRefreshed
}

// NewCacheRefreshed creates a new CacheRefreshed event
func NewCacheRefreshed(kind, scope, origin string, count int, late bool) CacheRefreshed {
	return CacheRefreshed{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		Kind:      kind,
		Scope:     scope,
		Origin:    origin,
		Count:     count,
		Late:      late,
	}
}

// CacheInvalidated is raised when a write marks cached scopes dirty
type CacheInvalidated struct {
	BaseEvent
	Kind   string
	Scopes []string
	Reason string
}

// EventName returns the event name
func (e CacheInvalidated) EventName() string {
	return NameCacheInvalidated
}

// NewCacheInvalidated creates a new CacheInvalidated event
func NewCacheInvalidated(kind string, scopes []string, reason string) CacheInvalidated {
	return CacheInvalidated{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		Kind:      kind,
		Scopes:    scopes,
		Reason:    reason,
	}
}

// RemoteFetchFailed is raised when a remote fetch errors
type RemoteFetchFailed struct {
	BaseEvent
	Kind  string
	Scope string
	Error string
	Fatal bool // the read failed because no source could serve it
}

// EventName returns the event name
func (e RemoteFetchFailed) EventName() string {
	return NameRemoteFetchFailed
}

// NewRemoteFetchFailed creates a new RemoteFetchFailed event
func NewRemoteFetchFailed(kind, scope string, err error, fatal bool) RemoteFetchFailed {
	return RemoteFetchFailed{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		Kind:      kind,
		Scope:     scope,
		Error:     err.Error(),
		Fatal:     fatal,
	}
}

// SyncCompleted is raised when a sync run finishes
type SyncCompleted struct {
	BaseEvent
	Projects int
	Events   int
	Failed   bool
	Duration time.Duration
}

// EventName returns the event name
func (e SyncCompleted) EventName() string {
	return NameSyncCompleted
}

// NewSyncCompleted creates a new SyncCompleted event
func NewSyncCompleted(projects, events int, failed bool, duration time.Duration) SyncCompleted {
	return SyncCompleted{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		Projects:  projects,
		Events:    events,
		Failed:    failed,
		Duration:  duration,
	}
}
