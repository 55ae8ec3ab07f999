package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/pkg/persist"
)

var (
	tee = catalog.Product{
		ID:    1,
		Title: "Tee",
		Price: 40,
		Sizes: []catalog.Size{{Name: "M", InStock: true}, {Name: "L", InStock: true}},
	}
	mug = catalog.Product{ID: 2, Title: "Mug", Price: 12.5}
)

func TestAddItem_MergesSameIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	require.NoError(t, s.AddItem(ctx, tee, "M", "", 1))
	require.NoError(t, s.AddItem(ctx, tee, "M", "", 2))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "1-M-none", items[0].LineID)
	assert.Equal(t, 120.0, s.GetTotal())
}

func TestAddItem_DistinctVariantsGetOwnLines(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	require.NoError(t, s.AddItem(ctx, tee, "M", "", 1))
	require.NoError(t, s.AddItem(ctx, tee, "L", "", 1))
	require.NoError(t, s.AddItem(ctx, mug, "", "", 0))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"1-M-none", "1-L-none", "2-none-none"},
		[]string{items[0].LineID, items[1].LineID, items[2].LineID})
	assert.Equal(t, 1, items[2].Quantity, "quantity below 1 defaults to 1")
	assert.Equal(t, 3, s.GetItemCount())
}

func TestAddItem_QuantityProperty(t *testing.T) {
	ctx := context.Background()
	pairs := [][2]int{{1, 1}, {1, 5}, {3, 4}, {10, 1}}

	for _, q := range pairs {
		s := NewStore(nil)
		require.NoError(t, s.AddItem(ctx, tee, "L", "Blue", q[0]))
		require.NoError(t, s.AddItem(ctx, tee, "L", "Blue", q[1]))

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, q[0]+q[1], items[0].Quantity)
	}
}

func TestAddItem_DoesNotMutatePreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.AddItem(ctx, mug, "", "", 1))

	var snapshots []State
	s.Subscribe(func(st State) { snapshots = append(snapshots, st) })

	require.NoError(t, s.AddItem(ctx, mug, "", "", 1))
	require.NoError(t, s.AddItem(ctx, mug, "", "", 1))

	require.Len(t, snapshots, 2)
	assert.Equal(t, 2, snapshots[0].Items[0].Quantity)
	assert.Equal(t, 3, snapshots[1].Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.AddItem(ctx, tee, "M", "", 1))
	require.NoError(t, s.AddItem(ctx, mug, "", "", 2))

	require.NoError(t, s.RemoveItem(ctx, "missing"))
	assert.Len(t, s.Items(), 2)

	require.NoError(t, s.RemoveItem(ctx, "1-M-none"))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2-none-none", items[0].LineID)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.AddItem(ctx, mug, "", "", 1))

	require.NoError(t, s.UpdateQuantity(ctx, "2-none-none", 4))
	item, ok := s.Item("2-none-none")
	require.True(t, ok)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, 50.0, s.GetTotal())

	require.NoError(t, s.UpdateQuantity(ctx, "unknown", 3))
	assert.Equal(t, 4, s.GetItemCount())
}

func TestUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()

	viaUpdate := NewStore(nil)
	viaRemove := NewStore(nil)
	for _, s := range []*Store{viaUpdate, viaRemove} {
		require.NoError(t, s.AddItem(ctx, tee, "M", "", 1))
		require.NoError(t, s.AddItem(ctx, mug, "", "", 2))
	}

	require.NoError(t, viaUpdate.UpdateQuantity(ctx, "1-M-none", 0))
	require.NoError(t, viaRemove.RemoveItem(ctx, "1-M-none"))

	assert.Equal(t, viaRemove.Items(), viaUpdate.Items())
}

func TestUpdateQuantity_RejectsNegative(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.AddItem(ctx, mug, "", "", 2))

	err := s.UpdateQuantity(ctx, "2-none-none", -1)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 2, s.GetItemCount())
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.AddItem(ctx, tee, "M", "", 1))

	require.NoError(t, s.ClearCart(ctx))

	assert.Empty(t, s.Items())
	assert.Zero(t, s.GetTotal())
	assert.Zero(t, s.GetItemCount())
}

func TestRemoveOrdered_KeepsLaterAdditions(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.AddItem(ctx, tee, "M", "", 2))
	ordered := s.Items()

	require.NoError(t, s.AddItem(ctx, tee, "M", "", 1))
	require.NoError(t, s.AddItem(ctx, mug, "", "", 1))

	require.NoError(t, s.RemoveOrdered(ctx, ordered))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1-M-none", items[0].LineID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "2-none-none", items[1].LineID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestRemoveOrdered_EmptiesUnchangedCart(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.AddItem(ctx, tee, "M", "", 2))
	require.NoError(t, s.AddItem(ctx, mug, "", "", 3))

	require.NoError(t, s.RemoveOrdered(ctx, s.Items()))

	assert.Empty(t, s.Items())
	assert.NotNil(t, s.Items())
	assert.Zero(t, s.GetItemCount())
}

func TestGetTotal_NeverStale(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	check := func() {
		var want float64
		for _, item := range s.Items() {
			want += item.Price * float64(item.Quantity)
		}
		assert.InDelta(t, want, s.GetTotal(), 1e-9)
	}

	require.NoError(t, s.AddItem(ctx, tee, "M", "", 2))
	check()
	require.NoError(t, s.AddItem(ctx, mug, "", "", 3))
	check()
	require.NoError(t, s.UpdateQuantity(ctx, "1-M-none", 1))
	check()
	require.NoError(t, s.RemoveItem(ctx, "2-none-none"))
	check()
}

func TestStore_PersistsAndHydrates(t *testing.T) {
	ctx := context.Background()
	repo := persist.NewMemoryRepository()

	s := NewStore(repo)
	require.NoError(t, s.AddItem(ctx, tee, "M", "", 2))

	raw, ok := repo.Raw(Namespace)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"items":[`)
	assert.Contains(t, string(raw), `"lineId":"1-M-none"`)
	assert.Contains(t, string(raw), `"selectedSize":"M"`)

	restored := NewStore(repo)
	require.NoError(t, restored.Hydrate(ctx))
	assert.Equal(t, s.Items(), restored.Items())
}

func TestItems_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.AddItem(ctx, tee, "M", "", 1))

	items := s.Items()
	items[0].Quantity = 99
	items[0].Sizes[0].Name = "XXL"

	fresh := s.Items()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, "M", fresh[0].Sizes[0].Name)
}

func TestSnapshot_IsDeep(t *testing.T) {
	items := []LineItem{{Product: tee.Clone(), Quantity: 1, LineID: "1-M-none"}}
	snap := Snapshot(items)
	items[0].Quantity = 5
	items[0].Sizes[0].InStock = false

	assert.Equal(t, 1, snap[0].Quantity)
	assert.True(t, snap[0].Sizes[0].InStock)
}
