package repository

import (
	"context"
	"sync"
	"sync/atomic"
)

type fetchFunc[T any] func(ctx context.Context) ([]T, error)

type fetched[T any] struct {
	remote bool
	items  []T
	err    error
}

func (f *fetched[T]) nonEmpty() bool {
	return f != nil && f.err == nil && len(f.items) > 0
}

// raceOutcome describes how a local/remote race ended.
type raceOutcome[T any] struct {
	winner *fetched[T]
	local  *fetched[T]
	remote *fetched[T]
	// pending delivers the remote result when the race returned before the
	// remote fetch finished. It is nil otherwise.
	pending <-chan fetched[T]
	err     error
}

// raceSources runs local and remote concurrently and returns as soon as one
// of them yields a non-empty result, or once both have settled.
//
// The local fetch is cancelled when the remote wins. Cancelling ctx cancels
// the remote fetch only while the race is undecided: once the local source
// wins, the remote fetch is detached so its late result can still be cached.
func raceSources[T any](ctx context.Context, wg *sync.WaitGroup, local, remote fetchFunc[T]) raceOutcome[T] {
	results := make(chan fetched[T], 2)
	localCtx, cancelLocal := context.WithCancel(ctx)
	defer cancelLocal()

	remoteCtx, cancelRemote := context.WithCancel(context.WithoutCancel(ctx))
	var detached atomic.Bool
	stop := context.AfterFunc(ctx, func() {
		if !detached.Load() {
			cancelRemote()
		}
	})
	defer stop()

	wg.Add(2)
	go func() {
		defer wg.Done()
		items, err := local(localCtx)
		results <- fetched[T]{items: items, err: err}
	}()
	go func() {
		defer wg.Done()
		defer cancelRemote()
		items, err := remote(remoteCtx)
		results <- fetched[T]{remote: true, items: items, err: err}
	}()

	var out raceOutcome[T]
	for out.local == nil || out.remote == nil {
		select {
		case r := <-results:
			if r.remote {
				out.remote = &r
			} else {
				out.local = &r
			}
			if r.nonEmpty() {
				out.winner = &r
				if !r.remote {
					detached.Store(true)
					out.pending = remoteResult(out, results)
				}
				return out
			}
		case <-ctx.Done():
			out.err = ctx.Err()
			out.pending = remoteResult(out, results)
			return out
		}
	}
	return out
}

// remoteResult returns a channel yielding the remote result if it has not
// been received yet. A late local result on results is dropped.
func remoteResult[T any](out raceOutcome[T], results <-chan fetched[T]) <-chan fetched[T] {
	if out.remote != nil {
		return nil
	}
	if out.local != nil {
		return results
	}
	filtered := make(chan fetched[T], 1)
	go func() {
		for r := range results {
			if r.remote {
				filtered <- r
				return
			}
		}
	}()
	return filtered
}
