package order

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront-state/internal/auth"
	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/pkg/persist"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(repo persist.Repository) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	seq := 0
	s := NewStore(repo,
		WithClock(clock.now),
		WithIDGenerator(func(time.Time) string {
			seq++
			return fmt.Sprintf("ORD-TEST-%d", seq)
		}),
	)
	return s, clock
}

func draft(userID int) Draft {
	return Draft{
		UserID: userID,
		Items: []cart.LineItem{{
			Product:  catalog.Product{ID: 1, Title: "Tee", Price: 40, Sizes: []catalog.Size{{Name: "M", InStock: true}}},
			Quantity: 3,
			LineID:   "1-M-none",
		}},
		Subtotal:        120,
		Shipping:        0,
		Tax:             12,
		Total:           132,
		ShippingAddress: auth.Address{ID: "addr-1", UserID: userID, IsDefault: true},
		PaymentMethod:   "card",
	}
}

func TestAddOrder(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(nil)

	o, err := s.AddOrder(ctx, draft(1))
	require.NoError(t, err)

	assert.Equal(t, "ORD-TEST-1", o.ID)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, clock.t, o.CreatedAt)
	assert.Equal(t, clock.t, o.UpdatedAt)
	assert.Equal(t, 132.0, o.Total)
	assert.Equal(t, 3, o.ItemCount())

	got, ok := s.GetOrderByID(o.ID)
	require.True(t, ok)
	assert.Equal(t, o, got)
}

func TestAddOrder_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)

	first, err := s.AddOrder(ctx, draft(1))
	require.NoError(t, err)
	_, err = s.AddOrder(ctx, draft(2))
	require.NoError(t, err)
	latest, err := s.AddOrder(ctx, draft(1))
	require.NoError(t, err)

	mine := s.GetOrdersByUserID(1)
	require.Len(t, mine, 2)
	assert.Equal(t, latest.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	assert.Len(t, s.Orders(), 3)
	assert.Empty(t, s.GetOrdersByUserID(99))
}

func TestAddOrder_ItemSnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)
	d := draft(1)

	o, err := s.AddOrder(ctx, d)
	require.NoError(t, err)

	d.Items[0].Quantity = 50
	d.Items[0].Sizes[0].Name = "XL"

	stored, ok := s.GetOrderByID(o.ID)
	require.True(t, ok)
	assert.Equal(t, 3, stored.Items[0].Quantity)
	assert.Equal(t, "M", stored.Items[0].Sizes[0].Name)
}

func TestAddOrder_LiveCartChangesDoNotLeak(t *testing.T) {
	ctx := context.Background()
	c := cart.NewStore(nil)
	require.NoError(t, c.AddItem(ctx, catalog.Product{ID: 5, Price: 10}, "", "", 2))

	s, _ := newTestStore(nil)
	o, err := s.AddOrder(ctx, Draft{UserID: 1, Items: c.Items()})
	require.NoError(t, err)

	require.NoError(t, c.UpdateQuantity(ctx, "5-none-none", 9))
	require.NoError(t, c.ClearCart(ctx))

	stored, _ := s.GetOrderByID(o.ID)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(nil)
	o, err := s.AddOrder(ctx, draft(1))
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour)
	require.NoError(t, s.UpdateOrderStatus(ctx, o.ID, StatusProcessing))

	got, _ := s.GetOrderByID(o.ID)
	assert.Equal(t, StatusProcessing, got.Status)
	assert.Equal(t, clock.t, got.UpdatedAt)
	assert.Equal(t, o.CreatedAt, got.CreatedAt)
}

func TestUpdateOrderStatus_UnknownIDIsSilent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)
	_, err := s.AddOrder(ctx, draft(1))
	require.NoError(t, err)

	assert.NoError(t, s.UpdateOrderStatus(ctx, "ORD-NOPE", StatusShipped))
}

func TestUpdateOrderStatus_RejectsBackwardMoves(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)
	o, err := s.AddOrder(ctx, draft(1))
	require.NoError(t, err)

	require.NoError(t, s.UpdateOrderStatus(ctx, o.ID, StatusDelivered))
	err = s.UpdateOrderStatus(ctx, o.ID, StatusPending)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	got, _ := s.GetOrderByID(o.ID)
	assert.Equal(t, StatusDelivered, got.Status)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusShipped, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusShipped, StatusProcessing, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusDelivered, StatusDelivered, true},
		{StatusPending, Status("lost"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestClearOrders(t *testing.T) {
	ctx := context.Background()
	repo := persist.NewMemoryRepository()
	s, _ := newTestStore(repo)
	_, err := s.AddOrder(ctx, draft(1))
	require.NoError(t, err)

	require.NoError(t, s.ClearOrders(ctx))
	assert.Empty(t, s.Orders())
	assert.NotNil(t, s.Orders())

	_, ok := repo.Raw(Namespace)
	assert.False(t, ok, "clearing drops the persisted history")

	restored, _ := newTestStore(repo)
	require.NoError(t, restored.Hydrate(ctx))
	assert.Empty(t, restored.Orders())
}

func TestStore_PersistsAndHydrates(t *testing.T) {
	ctx := context.Background()
	repo := persist.NewMemoryRepository()
	s, _ := newTestStore(repo)
	o, err := s.AddOrder(ctx, draft(7))
	require.NoError(t, err)

	raw, ok := repo.Raw(Namespace)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"orders":[`)
	assert.Contains(t, string(raw), `"shippingAddress":`)

	restored, _ := newTestStore(repo)
	require.NoError(t, restored.Hydrate(ctx))
	got, ok := restored.GetOrderByID(o.ID)
	require.True(t, ok)
	assert.Equal(t, 7, got.UserID)
	assert.Equal(t, StatusPending, got.Status)
}

func TestNewID_Format(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := NewID(now)

	assert.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-Z]{4}$`), id)
	assert.Contains(t, id, "ORD-LOYW3V28-")
}
