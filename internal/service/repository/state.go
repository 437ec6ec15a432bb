package repository

import (
	"slices"
	"strings"
	"sync"
)

// cacheState is the in-memory cache plus its dirty tracking. Every field is
// guarded by mu.
//
// A scope (a category for projects) is valid only when present in valid.
// Writes bump the scope's epoch and drop it from valid; full clears also bump
// generation. A fetch snapshots both before it starts and may only mark a
// scope valid if neither moved, so a write that lands mid-fetch is never
// hidden by the fetch's older result.
type cacheState[K comparable, T any] struct {
	mu         sync.Mutex
	entries    map[string]T
	valid      map[K]bool
	epochs     map[K]uint64
	generation uint64

	scopes  []K
	idOf    func(T) string
	scopeOf func(T) K
}

type snapshot[K comparable] struct {
	generation uint64
	epochs     map[K]uint64
}

func newCacheState[K comparable, T any](scopes []K, idOf func(T) string, scopeOf func(T) K) *cacheState[K, T] {
	return &cacheState[K, T]{
		entries: make(map[string]T),
		valid:   make(map[K]bool),
		epochs:  make(map[K]uint64),
		scopes:  scopes,
		idOf:    idOf,
		scopeOf: scopeOf,
	}
}

// cached returns the entries of scopes sorted by id, or false if any of the
// scopes is dirty.
func (s *cacheState[K, T]) cached(scopes []K) ([]T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range scopes {
		if !s.valid[k] {
			return nil, false
		}
	}

	out := make([]T, 0, len(s.entries))
	for _, item := range s.entries {
		if slices.Contains(scopes, s.scopeOf(item)) {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		return strings.Compare(s.idOf(a), s.idOf(b))
	})
	return out, true
}

func (s *cacheState[K, T]) begin(scopes []K) snapshot[K] {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot[K]{generation: s.generation, epochs: make(map[K]uint64, len(scopes))}
	for _, k := range scopes {
		snap.epochs[k] = s.epochs[k]
	}
	return snap
}

// unchanged reports whether no write touched scopes since snap.
func (s *cacheState[K, T]) unchanged(snap snapshot[K], scopes []K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != snap.generation {
		return false
	}
	for _, k := range scopes {
		if s.epochs[k] != snap.epochs[k] {
			return false
		}
	}
	return true
}

// apply replaces the cached contents of every scope in scopes that has not
// been written to since snap, and marks those scopes valid. It returns the
// scopes that were applied.
func (s *cacheState[K, T]) apply(snap snapshot[K], scopes []K, items []T) []K {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != snap.generation {
		return nil
	}

	fresh := make([]K, 0, len(scopes))
	for _, k := range scopes {
		if s.epochs[k] == snap.epochs[k] {
			fresh = append(fresh, k)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	for id, item := range s.entries {
		if slices.Contains(fresh, s.scopeOf(item)) {
			delete(s.entries, id)
		}
	}
	for _, item := range items {
		k := s.scopeOf(item)
		if !slices.Contains(fresh, k) {
			continue
		}
		// An id moving between categories must not leave a stale copy behind.
		if old, ok := s.entries[s.idOf(item)]; ok && s.scopeOf(old) != k {
			delete(s.valid, s.scopeOf(old))
			s.epochs[s.scopeOf(old)]++
		}
		s.entries[s.idOf(item)] = item
	}
	for _, k := range fresh {
		s.valid[k] = true
	}
	return fresh
}

// invalidate marks scopes dirty.
func (s *cacheState[K, T]) invalidate(scopes ...K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range scopes {
		delete(s.valid, k)
		s.epochs[k]++
	}
}

// invalidateAll marks every scope dirty.
func (s *cacheState[K, T]) invalidateAll() {
	s.invalidate(s.scopes...)
}

// clear empties the cache and marks every scope dirty.
func (s *cacheState[K, T]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]T)
	for _, k := range s.scopes {
		delete(s.valid, k)
		s.epochs[k]++
	}
	s.generation++
}

// clearScope drops the cached entries of k and marks it dirty.
func (s *cacheState[K, T]) clearScope(k K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.entries {
		if s.scopeOf(item) == k {
			delete(s.entries, id)
		}
	}
	delete(s.valid, k)
	s.epochs[k]++
}

// scopeOfID returns the scope of the cached entry with the given id.
func (s *cacheState[K, T]) scopeOfID(id string) (K, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.entries[id]
	if !ok {
		var zero K
		return zero, false
	}
	return s.scopeOf(item), true
}

type scopeStatus[K comparable] struct {
	scope  K
	dirty  bool
	cached int
}

func (s *cacheState[K, T]) status() []scopeStatus[K] {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[K]int, len(s.scopes))
	for _, item := range s.entries {
		counts[s.scopeOf(item)]++
	}
	out := make([]scopeStatus[K], len(s.scopes))
	for i, k := range s.scopes {
		out[i] = scopeStatus[K]{scope: k, dirty: !s.valid[k], cached: counts[k]}
	}
	return out
}
