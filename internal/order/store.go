package order

import (
	"context"
	"time"

	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/pkg/persist"
	"github.com/tair/storefront-state/pkg/statestore"
)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides order id generation.
func WithIDGenerator(gen func(time.Time) string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store is the order history state container.
type Store struct {
	state *statestore.Store[State]
	now   func() time.Time
	newID func(time.Time) string
}

// NewStore creates an empty order history backed by repo.
func NewStore(repo persist.Repository, opts ...Option) *Store {
	s := &Store{
		state: statestore.New(Namespace, State{Orders: []Order{}}, repo),
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate restores the persisted order history.
func (s *Store) Hydrate(ctx context.Context) error {
	return s.state.Hydrate(ctx)
}

// Subscribe calls fn with every new order state.
func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// Orders returns a copy of every order, most recent first.
func (s *Store) Orders() []Order {
	orders := s.state.Get().Orders
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}

// AddOrder stamps a new id and timestamps on draft, puts the order at the
// front of the list and returns it. The draft items are copied.
func (s *Store) AddOrder(ctx context.Context, draft Draft) (Order, error) {
	now := s.now()
	status := draft.Status
	if status == "" {
		status = StatusPending
	}
	created := Order{
		ID:              s.newID(now),
		UserID:          draft.UserID,
		Items:           cart.Snapshot(draft.Items),
		Subtotal:        draft.Subtotal,
		Shipping:        draft.Shipping,
		Tax:             draft.Tax,
		Total:           draft.Total,
		Status:          status,
		ShippingAddress: draft.ShippingAddress,
		PaymentMethod:   draft.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.state.Update(ctx, "addOrder", func(st State) (State, error) {
		orders := make([]Order, 0, len(st.Orders)+1)
		orders = append(orders, created)
		orders = append(orders, st.Orders...)
		return State{Orders: orders}, nil
	})
	return created.Clone(), err
}

// UpdateOrderStatus moves an order to status and bumps UpdatedAt. Unknown
// ids are ignored; moves that CanTransitionTo forbids return
// ErrInvalidStatusTransition and change nothing.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status Status) error {
	now := s.now()
	return s.state.Update(ctx, "updateOrderStatus", func(st State) (State, error) {
		orders := make([]Order, len(st.Orders))
		for i, o := range st.Orders {
			if o.ID == orderID {
				if !o.Status.CanTransitionTo(status) {
					return st, transitionError(o.Status, status)
				}
				o.Status = status
				o.UpdatedAt = now
			}
			orders[i] = o
		}
		return State{Orders: orders}, nil
	})
}

// GetOrderByID looks up an order.
func (s *Store) GetOrderByID(orderID string) (Order, bool) {
	for _, o := range s.state.Get().Orders {
		if o.ID == orderID {
			return o.Clone(), true
		}
	}
	return Order{}, false
}

// GetOrdersByUserID returns the user's orders, most recent first.
func (s *Store) GetOrdersByUserID(userID int) []Order {
	out := []Order{}
	for _, o := range s.state.Get().Orders {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out
}

// ClearOrders empties the order history and drops its persisted record.
func (s *Store) ClearOrders(ctx context.Context) error {
	return s.state.Reset(ctx, "clearOrders")
}
