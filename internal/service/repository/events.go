package repository

import (
	"context"

	"go.trai.ch/zerr"
	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/port"
)

// eventScope is the single cache scope of the event repository
type eventScope struct{}

// EventRepository is the event counterpart of ProjectRepository. Events have
// no category, so the whole set is one cache scope.
type EventRepository struct {
	local  port.EventSource
	remote port.EventSource
	state  *cacheState[eventScope, domain.Event]
	engine *engine[eventScope, domain.Event]
}

// Ensure EventRepository implements port.EventSource
var _ port.EventSource = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository
func NewEventRepository(cfg *Config, local, remote port.EventSource, logger *zap.Logger) *EventRepository {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	state := newCacheState([]eventScope{{}}, domain.Event.ID, func(domain.Event) eventScope { return eventScope{} })
	return &EventRepository{
		local:  local,
		remote: remote,
		state:  state,
		engine: newEngine("events", cfg, state, logger),
	}
}

func (r *EventRepository) write(op string, fn func() error) error {
	err := r.engine.exclusive(func() error {
		r.state.invalidateAll()
		r.engine.invalidated(op, scopeAll)

		err := fn()
		r.state.invalidateAll()
		return err
	})
	return persistenceError(op, err)
}

// InsertEvent upserts an event in the local store
func (r *EventRepository) InsertEvent(ctx context.Context, event domain.Event) error {
	err := r.write("insert event", func() error {
		return r.local.InsertEvent(ctx, event)
	})
	if err != nil {
		return zerr.With(err, "event_id", event.ID())
	}
	return nil
}

// InsertEvents upserts events in the local store
func (r *EventRepository) InsertEvents(ctx context.Context, events []domain.Event) error {
	return r.write("insert events", func() error {
		return r.local.InsertEvents(ctx, events)
	})
}

// SetEvents replaces every event in the local store
func (r *EventRepository) SetEvents(ctx context.Context, events []domain.Event) error {
	return r.write("set events", func() error {
		return r.local.SetEvents(ctx, events)
	})
}

// ClearEvents removes every event from the cache and the local store
func (r *EventRepository) ClearEvents(ctx context.Context) error {
	err := r.engine.exclusive(func() error {
		r.state.clear()
		r.engine.invalidated("clear events", scopeAll)

		err := r.local.ClearEvents(ctx)
		r.state.invalidateAll()
		return err
	})
	return persistenceError("clear events", err)
}

// GetEvent returns one event, syncing first if the cache is dirty
func (r *EventRepository) GetEvent(ctx context.Context, id string, force bool) (domain.Event, error) {
	events, err := r.GetEvents(ctx, force)
	if err != nil {
		return domain.Event{}, err
	}
	for _, e := range events {
		if e.ID() == id {
			return e, nil
		}
	}
	return domain.Event{}, zerr.With(zerr.Wrap(domain.ErrNotFound, "event not found"), "event_id", id)
}

// GetEvents returns every event
func (r *EventRepository) GetEvents(ctx context.Context, force bool) ([]domain.Event, error) {
	return r.engine.read(ctx, query[eventScope, domain.Event]{
		key:    scopeAll,
		scopes: []eventScope{{}},
		local: func(ctx context.Context) ([]domain.Event, error) {
			return r.local.GetEvents(ctx, false)
		},
		remote: func(ctx context.Context) ([]domain.Event, error) {
			return r.remote.GetEvents(ctx, true)
		},
		persist: func(ctx context.Context, events []domain.Event) error {
			return r.local.SetEvents(ctx, events)
		},
	}, force)
}

// Dirty reports whether the next non-forced read will fetch
func (r *EventRepository) Dirty() bool {
	return r.state.status()[0].dirty
}

// Cached returns the number of cached events
func (r *EventRepository) Cached() int {
	return r.state.status()[0].cached
}

// Wait blocks until background remote fetches have settled. It must not be
// called while reads are in flight; use Close at shutdown.
func (r *EventRepository) Wait() {
	r.engine.wait()
}

// Close stops reads from starting new fetches and waits for background
// remote fetches to settle.
func (r *EventRepository) Close() {
	r.engine.close()
}
