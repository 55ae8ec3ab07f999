package cart

import (
	"context"

	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/internal/identity"
	"github.com/tair/storefront-state/pkg/persist"
	"github.com/tair/storefront-state/pkg/statestore"
)

// Store is the cart state container.
type Store struct {
	state *statestore.Store[State]
}

// NewStore creates an empty cart backed by repo.
func NewStore(repo persist.Repository) *Store {
	return &Store{state: statestore.New(Namespace, State{Items: []LineItem{}}, repo)}
}

// Hydrate restores the persisted cart.
func (s *Store) Hydrate(ctx context.Context) error {
	return s.state.Hydrate(ctx)
}

// Subscribe calls fn with every new cart state.
func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// Items returns a copy of the current lines.
func (s *Store) Items() []LineItem {
	return Snapshot(s.state.Get().Items)
}

// Item looks up a line by id.
func (s *Store) Item(lineID string) (LineItem, bool) {
	for _, item := range s.state.Get().Items {
		if item.LineID == lineID {
			return item.Clone(), true
		}
	}
	return LineItem{}, false
}

// AddItem adds quantity of the (product, size, color) line, merging into an
// existing line with the same identity. A quantity below 1 counts as 1.
// Size and color are not checked against the product's stock lists here.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, size, color string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	lineID := identity.LineID(product.ID, size, color)

	return s.state.Update(ctx, "addItem", func(st State) (State, error) {
		items := make([]LineItem, 0, len(st.Items)+1)
		merged := false
		for _, item := range st.Items {
			if item.LineID == lineID {
				item.Quantity += quantity
				merged = true
			}
			items = append(items, item)
		}
		if !merged {
			items = append(items, LineItem{
				Product:       product.Clone(),
				SelectedSize:  size,
				SelectedColor: color,
				Quantity:      quantity,
				LineID:        lineID,
			})
		}
		return State{Items: items}, nil
	})
}

// RemoveItem drops a line. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, lineID string) error {
	return s.state.Update(ctx, "removeItem", func(st State) (State, error) {
		return State{Items: without(st.Items, lineID)}, nil
	})
}

// UpdateQuantity sets a line's quantity; zero removes the line and negative
// values are rejected with ErrInvalidQuantity. Unknown ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, lineID)
	}

	return s.state.Update(ctx, "updateQuantity", func(st State) (State, error) {
		items := make([]LineItem, len(st.Items))
		for i, item := range st.Items {
			if item.LineID == lineID {
				item.Quantity = quantity
			}
			items[i] = item
		}
		return State{Items: items}, nil
	})
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.state.Update(ctx, "clearCart", func(State) (State, error) {
		return State{Items: []LineItem{}}, nil
	})
}

// RemoveOrdered takes checked-out lines out of the cart. Each matching
// line loses the ordered quantity and is dropped when nothing is left;
// lines and quantities added after the order snapshot stay in the cart.
func (s *Store) RemoveOrdered(ctx context.Context, ordered []LineItem) error {
	taken := make(map[string]int, len(ordered))
	for _, item := range ordered {
		taken[item.LineID] += item.Quantity
	}

	return s.state.Update(ctx, "removeOrdered", func(st State) (State, error) {
		items := make([]LineItem, 0, len(st.Items))
		for _, item := range st.Items {
			item.Quantity -= taken[item.LineID]
			if item.Quantity > 0 {
				items = append(items, item)
			}
		}
		return State{Items: items}, nil
	})
}

// GetTotal recomputes the subtotal from the current lines.
func (s *Store) GetTotal() float64 {
	return Subtotal(s.state.Get().Items)
}

// GetItemCount sums line quantities.
func (s *Store) GetItemCount() int {
	return ItemCount(s.state.Get().Items)
}

func without(items []LineItem, lineID string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.LineID != lineID {
			out = append(out, item)
		}
	}
	return out
}
