// Package app assembles the storefront stores and the handlers that act on
// them.
package app

import (
	"context"
	"errors"

	"github.com/tair/storefront-state/internal/auth"
	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/order"
	"github.com/tair/storefront-state/internal/pricing"
	"github.com/tair/storefront-state/internal/storefront/usecase/command"
	"github.com/tair/storefront-state/internal/storefront/usecase/query"
	"github.com/tair/storefront-state/internal/wishlist"
	"github.com/tair/storefront-state/pkg/persist"
)

// Commands groups the command handlers.
type Commands struct {
	AddToCart         *command.AddToCartHandler
	AddToWishlist     *command.AddToWishlistHandler
	ToggleWishlist    *command.ToggleWishlistHandler
	MoveToCart        *command.MoveToCartHandler
	PlaceOrder        *command.PlaceOrderHandler
	UpdateOrderStatus *command.UpdateOrderStatusHandler
	CancelOrder       *command.CancelOrderHandler
}

// Queries groups the query handlers.
type Queries struct {
	CartSummary  *query.CartSummaryHandler
	OrderHistory *query.OrderHistoryHandler
	GetOrder     *query.GetOrderHandler
}

// Container owns one instance of every store. It is built once by the
// composition root and passed to whoever needs state.
type Container struct {
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Orders   *order.Store
	Auth     *auth.Store
	Policy   pricing.Policy
	Commands *Commands
	Queries  *Queries
}

// NewContainer creates a new container
func NewContainer(
	cartStore *cart.Store,
	wishlistStore *wishlist.Store,
	orders *order.Store,
	authStore *auth.Store,
	policy pricing.Policy,
	commands *Commands,
	queries *Queries,
) *Container {
	return &Container{
		Cart:     cartStore,
		Wishlist: wishlistStore,
		Orders:   orders,
		Auth:     authStore,
		Policy:   policy,
		Commands: commands,
		Queries:  queries,
	}
}

// Hydrate loads every store from its persisted record. A store that fails
// to load keeps its empty state; the others are still loaded.
func (c *Container) Hydrate(ctx context.Context) error {
	return errors.Join(
		c.Cart.Hydrate(ctx),
		c.Wishlist.Hydrate(ctx),
		c.Orders.Hydrate(ctx),
		c.Auth.Hydrate(ctx),
	)
}

// ProvideCartStore provides the cart store
func ProvideCartStore(repo persist.Repository) *cart.Store {
	return cart.NewStore(repo)
}

// ProvideWishlistStore provides the wishlist store
func ProvideWishlistStore(repo persist.Repository) *wishlist.Store {
	return wishlist.NewStore(repo)
}

// ProvideOrderStore provides the order store
func ProvideOrderStore(repo persist.Repository) *order.Store {
	return order.NewStore(repo)
}

// ProvideAuthStore provides the auth store
func ProvideAuthStore(repo persist.Repository) *auth.Store {
	return auth.NewStore(repo)
}
