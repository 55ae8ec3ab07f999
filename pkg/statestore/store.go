// Package statestore is the reactive container behind every client-side
// store: it holds one immutable snapshot, replaces it on each update, writes
// it through a persist.Repository and notifies subscribers.
package statestore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tair/storefront-state/pkg/logger"
	"github.com/tair/storefront-state/pkg/persist"
)

// Store holds the state of type T for one persistence namespace.
//
// Snapshots handed out by Get and to listeners are shared, so callers must
// treat them as read-only; update functions build new slices instead of
// writing into the old ones.
type Store[T any] struct {
	mu        sync.RWMutex
	namespace string
	initial   T
	state     T
	repo      persist.Repository

	// notifyMu is taken before mu is released, so listeners receive
	// snapshots in the order the updates were applied.
	notifyMu sync.Mutex

	listenersMu sync.Mutex
	listeners   map[int]func(T)
	nextID      int
}

// New creates a store seeded with initial. Nothing is loaded until Hydrate.
func New[T any](namespace string, initial T, repo persist.Repository) *Store[T] {
	if repo == nil {
		repo = persist.NewMemoryRepository()
	}
	return &Store[T]{
		namespace: namespace,
		initial:   initial,
		state:     initial,
		repo:      repo,
		listeners: make(map[int]func(T)),
	}
}

// Namespace returns the persistence key of this store.
func (s *Store[T]) Namespace() string {
	return s.namespace
}

// Get returns the current snapshot.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Hydrate replaces the in-memory state with the persisted snapshot, if any.
func (s *Store[T]) Hydrate(ctx context.Context) error {
	log := logger.Component(ctx, s.namespace)

	var loaded T
	found, err := s.repo.Load(ctx, s.namespace, &loaded)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hydrate store")
		return fmt.Errorf("failed to hydrate %s: %w", s.namespace, err)
	}
	if !found {
		log.Debug().Msg("No persisted state, starting empty")
		return nil
	}

	s.mu.Lock()
	s.state = loaded
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	log.Debug().Msg("Store hydrated")
	s.notify(loaded)
	return nil
}

// Update applies fn to the current snapshot. When fn returns an error the
// state is left unchanged and the error is returned as is. Otherwise the
// new snapshot becomes current, is saved and is broadcast to subscribers.
//
// A save failure does not roll the in-memory state back; the error is
// returned so the caller can surface it.
func (s *Store[T]) Update(ctx context.Context, op string, fn func(T) (T, error)) error {
	s.mu.Lock()
	next, err := fn(s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	saveErr := s.repo.Save(ctx, s.namespace, next)
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	return s.finish(ctx, op, next, saveErr)
}

// Reset puts the initial state back and drops the persisted snapshot, so a
// later Hydrate starts from the initial state as well.
func (s *Store[T]) Reset(ctx context.Context, op string) error {
	s.mu.Lock()
	s.state = s.initial
	deleteErr := s.repo.Delete(ctx, s.namespace)
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	return s.finish(ctx, op, s.initial, deleteErr)
}

func (s *Store[T]) finish(ctx context.Context, op string, next T, persistErr error) error {
	log := logger.Component(ctx, s.namespace)
	if persistErr != nil {
		log.Error().Err(persistErr).Str("op", op).Msg("Failed to persist state")
		persistErr = fmt.Errorf("failed to persist %s state: %w", s.namespace, persistErr)
	} else {
		log.Debug().Str("op", op).Msg("State updated")
	}

	s.notify(next)
	return persistErr
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the subscription. Listeners run one at a time in update order and
// must not update the store they are subscribed to.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store[T]) notify(state T) {
	s.listenersMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
