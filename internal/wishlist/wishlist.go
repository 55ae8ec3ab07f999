// Package wishlist owns the set of saved product ids.
package wishlist

import (
	"context"
	"time"

	"github.com/tair/storefront-state/pkg/persist"
	"github.com/tair/storefront-state/pkg/statestore"
)

// Namespace is the persistence key of the wishlist state.
const Namespace = "wishlist-storage"

// Entry is a saved product. ProductID is unique within the list.
type Entry struct {
	ProductID int       `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

// State is the persisted wishlist document: {"items": [...]}.
type State struct {
	Items []Entry `json:"items"`
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for AddedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the wishlist state container.
type Store struct {
	state *statestore.Store[State]
	now   func() time.Time
}

// NewStore creates an empty wishlist backed by repo.
func NewStore(repo persist.Repository, opts ...Option) *Store {
	s := &Store{
		state: statestore.New(Namespace, State{Items: []Entry{}}, repo),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate restores the persisted wishlist.
func (s *Store) Hydrate(ctx context.Context) error {
	return s.state.Hydrate(ctx)
}

// Subscribe calls fn with every new wishlist state.
func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// Items returns a copy of the saved entries in insertion order.
func (s *Store) Items() []Entry {
	return append([]Entry(nil), s.state.Get().Items...)
}

// AddItem saves productID. Already saved ids are left as they are.
func (s *Store) AddItem(ctx context.Context, productID int) error {
	return s.state.Update(ctx, "addItem", func(st State) (State, error) {
		return add(st, productID, s.now()), nil
	})
}

// RemoveItem drops productID. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, productID int) error {
	return s.state.Update(ctx, "removeItem", func(st State) (State, error) {
		return remove(st, productID), nil
	})
}

// ToggleItem adds productID when absent and removes it when present. It
// reports whether the product is saved afterwards.
func (s *Store) ToggleItem(ctx context.Context, productID int) (bool, error) {
	var saved bool
	err := s.state.Update(ctx, "toggleItem", func(st State) (State, error) {
		if contains(st, productID) {
			saved = false
			return remove(st, productID), nil
		}
		saved = true
		return add(st, productID, s.now()), nil
	})
	return saved, err
}

// IsInWishlist reports whether productID is saved.
func (s *Store) IsInWishlist(productID int) bool {
	return contains(s.state.Get(), productID)
}

// GetItemCount returns the number of saved products.
func (s *Store) GetItemCount() int {
	return len(s.state.Get().Items)
}

// ClearWishlist removes every entry.
func (s *Store) ClearWishlist(ctx context.Context) error {
	return s.state.Update(ctx, "clearWishlist", func(State) (State, error) {
		return State{Items: []Entry{}}, nil
	})
}

func contains(st State, productID int) bool {
	for _, e := range st.Items {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

func add(st State, productID int, now time.Time) State {
	if contains(st, productID) {
		return st
	}
	items := make([]Entry, 0, len(st.Items)+1)
	items = append(items, st.Items...)
	items = append(items, Entry{ProductID: productID, AddedAt: now})
	return State{Items: items}
}

func remove(st State, productID int) State {
	items := make([]Entry, 0, len(st.Items))
	for _, e := range st.Items {
		if e.ProductID != productID {
			items = append(items, e)
		}
	}
	return State{Items: items}
}
