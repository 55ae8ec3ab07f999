package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront-state/internal/auth"
	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/internal/pricing"
	"github.com/tair/storefront-state/internal/storefront/usecase/command"
	"github.com/tair/storefront-state/internal/wishlist"
	"github.com/tair/storefront-state/pkg/persist"
)

func TestInitializeContainer_SharesStores(t *testing.T) {
	ctx := context.Background()
	c, err := InitializeContainer(persist.NewMemoryRepository(), pricing.DefaultPolicy(), command.NoopPublisher{})
	require.NoError(t, err)

	res, err := c.Commands.AddToCart.Handle(ctx, command.AddToCartCommand{Product: catalog.Product{ID: 1, Price: 25}})
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, 1, c.Cart.GetItemCount())
	assert.Equal(t, 25.0, c.Queries.CartSummary.Handle().Subtotal)
}

func TestContainer_HydrateRestoresEveryStore(t *testing.T) {
	ctx := context.Background()
	repo := persist.NewMemoryRepository()

	first, err := InitializeContainer(repo, pricing.DefaultPolicy(), command.NoopPublisher{})
	require.NoError(t, err)
	require.NoError(t, first.Cart.AddItem(ctx, catalog.Product{ID: 1, Price: 10}, "", "", 2))
	require.NoError(t, first.Wishlist.AddItem(ctx, 4))
	require.NoError(t, first.Auth.AddAddress(ctx, auth.Address{ID: "home"}))

	second, err := InitializeContainer(repo, pricing.DefaultPolicy(), command.NoopPublisher{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Cart.GetItemCount())

	require.NoError(t, second.Hydrate(ctx))
	assert.Equal(t, 2, second.Cart.GetItemCount())
	assert.True(t, second.Wishlist.IsInWishlist(4))
	def, ok := second.Auth.GetDefaultAddress()
	require.True(t, ok)
	assert.Equal(t, "home", def.ID)
}

func TestContainer_HydrateReportsCorruptRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := persist.NewFileRepository(dir)
	require.NoError(t, err)

	seed := wishlist.NewStore(repo)
	require.NoError(t, seed.AddItem(ctx, 9))
	require.NoError(t, os.WriteFile(filepath.Join(dir, cart.Namespace+".json"), []byte("{not json"), 0o644))

	c, err := InitializeContainer(repo, pricing.DefaultPolicy(), command.NoopPublisher{})
	require.NoError(t, err)

	err = c.Hydrate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), cart.Namespace)
	assert.True(t, c.Wishlist.IsInWishlist(9))
	assert.Empty(t, c.Cart.Items())
}
