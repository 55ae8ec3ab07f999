package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/internal/wishlist"
	"github.com/tair/storefront-state/pkg/logger"
)

// ToggleWishlistCommand flips whether a product is saved
type ToggleWishlistCommand struct {
	ProductID int
}

// ToggleWishlistHandler handles toggle wishlist command
type ToggleWishlistHandler struct {
	wishlist *wishlist.Store
}

// NewToggleWishlistHandler creates a new toggle wishlist handler
func NewToggleWishlistHandler(w *wishlist.Store) *ToggleWishlistHandler {
	return &ToggleWishlistHandler{wishlist: w}
}

// Handle executes the toggle wishlist command
func (h *ToggleWishlistHandler) Handle(ctx context.Context, cmd ToggleWishlistCommand) (Result, error) {
	added, err := h.wishlist.ToggleItem(ctx, cmd.ProductID)
	if err != nil {
		return fail(err.Error()), fmt.Errorf("failed to toggle wishlist: %w", err)
	}
	if added {
		return ok(MsgAddedToWishlist), nil
	}
	return ok(MsgRemovedFromWishlist), nil
}

// AddToWishlistCommand saves a product
type AddToWishlistCommand struct {
	ProductID int
}

// AddToWishlistHandler handles add to wishlist command
type AddToWishlistHandler struct {
	wishlist *wishlist.Store
}

// NewAddToWishlistHandler creates a new add to wishlist handler
func NewAddToWishlistHandler(w *wishlist.Store) *AddToWishlistHandler {
	return &AddToWishlistHandler{wishlist: w}
}

// Handle executes the add to wishlist command
func (h *AddToWishlistHandler) Handle(ctx context.Context, cmd AddToWishlistCommand) (Result, error) {
	if h.wishlist.IsInWishlist(cmd.ProductID) {
		return fail(MsgAlreadyInWishlist), nil
	}
	if err := h.wishlist.AddItem(ctx, cmd.ProductID); err != nil {
		return fail(err.Error()), fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return ok(MsgAddedToWishlist), nil
}

// MoveToCartCommand moves a saved product into the cart
type MoveToCartCommand struct {
	Product catalog.Product
	Size    string
	Color   string
}

// MoveToCartHandler handles move to cart command
type MoveToCartHandler struct {
	wishlist *wishlist.Store
	cart     *cart.Store
}

// NewMoveToCartHandler creates a new move to cart handler
func NewMoveToCartHandler(w *wishlist.Store, c *cart.Store) *MoveToCartHandler {
	return &MoveToCartHandler{wishlist: w, cart: c}
}

// Handle adds one unit of the product to the cart and, once that worked,
// drops it from the wishlist. An invalid selection leaves both untouched.
func (h *MoveToCartHandler) Handle(ctx context.Context, cmd MoveToCartCommand) (Result, error) {
	if res, valid := validateSelection(cmd.Product, cmd.Size, cmd.Color); !valid {
		return res, nil
	}

	if err := h.cart.AddItem(ctx, cmd.Product, cmd.Size, cmd.Color, 1); err != nil {
		return fail(err.Error()), fmt.Errorf("failed to add to cart: %w", err)
	}
	if err := h.wishlist.RemoveItem(ctx, cmd.Product.ID); err != nil {
		return fail(err.Error()), fmt.Errorf("failed to remove from wishlist: %w", err)
	}

	logger.Info(ctx).
		Int("product_id", cmd.Product.ID).
		Msg("Moved wishlist item to cart")

	return ok(MsgMovedToCart), nil
}
