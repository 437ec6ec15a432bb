package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/zerr"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/domain/event"
)

// query describes one read: which scopes it covers and how to fetch and
// persist them.
type query[K comparable, T any] struct {
	key     string
	scopes  []K
	local   fetchFunc[T]
	remote  fetchFunc[T]
	persist func(ctx context.Context, items []T) error
}

// ErrClosed is returned by reads that would fetch after Close.
var ErrClosed = errors.New("repository closed")

// engine implements the read policy shared by the project and event
// repositories.
type engine[K comparable, T any] struct {
	kind       string
	state      *cacheState[K, T]
	group      *singleflight.Group
	dispatcher event.EventDispatcher
	logger     *zap.Logger

	// writeMu serialises repository writes with write-through, so a fetch
	// result older than a completed write never reaches the local store.
	writeMu sync.Mutex

	// wg counts fetches and late settles. Slots are taken under mu so none
	// is added once closed is set.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func newEngine[K comparable, T any](kind string, cfg *Config, state *cacheState[K, T], logger *zap.Logger) *engine[K, T] {
	e := &engine[K, T]{
		kind:       kind,
		state:      state,
		dispatcher: cfg.Dispatcher,
		logger:     logger.With(zap.String("kind", kind)),
	}
	if e.dispatcher == nil {
		e.dispatcher = event.NewNullDispatcher()
	}
	if cfg.CoalesceReads {
		e.group = &singleflight.Group{}
	}
	return e
}

// read serves q from the cache when every scope is valid and force is not
// set; otherwise it fetches.
func (e *engine[K, T]) read(ctx context.Context, q query[K, T], force bool) ([]T, error) {
	if !force {
		if items, ok := e.state.cached(q.scopes); ok {
			return items, nil
		}
	}

	if !e.acquire() {
		return nil, ErrClosed
	}

	if e.group == nil {
		defer e.wg.Done()
		return e.fetch(ctx, q, force)
	}

	key := q.key
	if force {
		key = "force:" + key
	}
	// The shared fetch outlives any one caller's cancellation.
	detached := context.WithoutCancel(ctx)
	ch := e.group.DoChan(key, func() (any, error) {
		return e.fetch(detached, q, force)
	})
	done := make(chan singleflight.Result, 1)
	go func() {
		defer e.wg.Done()
		done <- <-ch
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			e.logger.Debug("coalesced read", zap.String("scope", q.key))
		}
		return slices.Clone(res.Val.([]T)), nil
	}
}

// acquire takes a wg slot for one read, failing once the engine is closed.
func (e *engine[K, T]) acquire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	e.wg.Add(1)
	return true
}

func (e *engine[K, T]) fetch(ctx context.Context, q query[K, T], force bool) ([]T, error) {
	snap := e.state.begin(q.scopes)

	if force {
		items, err := q.remote(ctx)
		if err != nil {
			e.dispatcher.Dispatch(event.NewRemoteFetchFailed(e.kind, q.key, err, true))
			return nil, err
		}
		items = nonNil(items)
		e.settle(ctx, snap, q, items, event.OriginRemote, false)
		return items, nil
	}

	out := raceSources(ctx, &e.wg, q.local, q.remote)

	switch {
	case out.winner != nil && out.winner.remote:
		e.logLocalError(q, out.local)
		e.settle(ctx, snap, q, out.winner.items, event.OriginRemote, false)
		return out.winner.items, nil

	case out.winner != nil:
		e.applyResult(snap, q, out.winner.items, event.OriginLocal, false)
		e.settleLate(ctx, q, snap, out.pending)
		return out.winner.items, nil

	case out.err != nil:
		e.settleLate(ctx, q, snap, out.pending)
		return nil, out.err
	}

	// Both settled and neither had data.
	if out.remote.err == nil {
		items := nonNil(out.remote.items)
		e.logLocalError(q, out.local)
		e.settle(ctx, snap, q, items, event.OriginRemote, false)
		return items, nil
	}

	if out.local.err == nil {
		e.dispatcher.Dispatch(event.NewRemoteFetchFailed(e.kind, q.key, out.remote.err, false))
		e.logger.Debug("remote fetch failed, local store is empty",
			zap.String("scope", q.key),
			zap.Error(out.remote.err),
		)
		return make([]T, 0), nil
	}

	e.dispatcher.Dispatch(event.NewRemoteFetchFailed(e.kind, q.key, out.remote.err, true))
	err := fmt.Errorf("%w: local: %w; remote: %w",
		domain.ErrSourceUnavailable, out.local.err, out.remote.err)
	return nil, zerr.With(zerr.Wrap(err, "read "+e.kind), "scope", q.key)
}

// settleLate waits in the background for a remote result that arrived after
// the read returned. A non-empty result is written through and cached.
func (e *engine[K, T]) settleLate(ctx context.Context, q query[K, T], snap snapshot[K], pending <-chan fetched[T]) {
	if pending == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer zerr.Defer(func(err error) {
			e.logger.Error("late remote settle panicked", zap.String("scope", q.key), zap.Error(err))
		})

		r := <-pending
		if r.err != nil {
			e.dispatcher.Dispatch(event.NewRemoteFetchFailed(e.kind, q.key, r.err, false))
			e.logger.Debug("late remote fetch failed", zap.String("scope", q.key), zap.Error(r.err))
			return
		}
		if len(r.items) == 0 {
			return
		}
		e.settle(ctx, snap, q, r.items, event.OriginRemote, true)
	}()
}

// settle writes a remote result through to the local store and applies it
// to the cache. The store is skipped when a repository write touched any of
// the query's scopes since snap; the cache keeps only untouched scopes.
func (e *engine[K, T]) settle(ctx context.Context, snap snapshot[K], q query[K, T], items []T, origin string, late bool) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if e.state.unchanged(snap, q.scopes) {
		e.writeThrough(ctx, q, items)
	} else {
		e.logger.Debug("skipping write-through of a result older than a local write",
			zap.String("scope", q.key),
			zap.Bool("late", late),
		)
	}
	e.applyResult(snap, q, items, origin, late)
}

// exclusive runs a repository write so it cannot interleave with settle.
func (e *engine[K, T]) exclusive(fn func() error) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return fn()
}

func (e *engine[K, T]) writeThrough(ctx context.Context, q query[K, T], items []T) {
	if err := q.persist(ctx, items); err != nil {
		e.logger.Warn("write-through to local store failed",
			zap.String("scope", q.key),
			zap.Int("count", len(items)),
			zap.Error(err),
		)
	}
}

func (e *engine[K, T]) applyResult(snap snapshot[K], q query[K, T], items []T, origin string, late bool) {
	applied := e.state.apply(snap, q.scopes, items)
	if len(applied) < len(q.scopes) {
		e.logger.Debug("cache write raced a local write; affected scopes stay dirty",
			zap.String("scope", q.key),
			zap.Int("applied", len(applied)),
			zap.Int("requested", len(q.scopes)),
		)
	}
	if len(applied) > 0 {
		e.dispatcher.Dispatch(event.NewCacheRefreshed(e.kind, q.key, origin, len(items), late))
	}
}

func (e *engine[K, T]) logLocalError(q query[K, T], local *fetched[T]) {
	if local != nil && local.err != nil && !errors.Is(local.err, context.Canceled) {
		e.logger.Debug("local fetch failed", zap.String("scope", q.key), zap.Error(local.err))
	}
}

// invalidated reports a write that made scopes dirty.
func (e *engine[K, T]) invalidated(reason string, scopes ...string) {
	e.dispatcher.Dispatch(event.NewCacheInvalidated(e.kind, scopes, reason))
}

// wait blocks until background fetches and settles have finished. It must
// not run concurrently with reads; use close at shutdown.
func (e *engine[K, T]) wait() {
	e.wg.Wait()
}

// close makes later fetching reads fail with ErrClosed and waits for the
// ones in flight, late settles included.
func (e *engine[K, T]) close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.wg.Wait()
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}

// persistenceError wraps a local write failure.
func persistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrPersistence) {
		err = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return zerr.Wrap(err, op)
}
