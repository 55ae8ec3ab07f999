package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/pkg/logger"
)

// AddToCartCommand represents the command to add a product variant to the cart
type AddToCartCommand struct {
	Product  catalog.Product
	Size     string
	Color    string
	Quantity int
}

// AddToCartHandler handles add to cart command
type AddToCartHandler struct {
	cart *cart.Store
}

// NewAddToCartHandler creates a new add to cart handler
func NewAddToCartHandler(cart *cart.Store) *AddToCartHandler {
	return &AddToCartHandler{cart: cart}
}

// Handle executes the add to cart command
func (h *AddToCartHandler) Handle(ctx context.Context, cmd AddToCartCommand) (Result, error) {
	if res, valid := validateSelection(cmd.Product, cmd.Size, cmd.Color); !valid {
		return res, nil
	}

	if err := h.cart.AddItem(ctx, cmd.Product, cmd.Size, cmd.Color, cmd.Quantity); err != nil {
		return fail(err.Error()), fmt.Errorf("failed to add to cart: %w", err)
	}

	logger.Info(ctx).
		Int("product_id", cmd.Product.ID).
		Str("size", cmd.Size).
		Str("color", cmd.Color).
		Int("quantity", cmd.Quantity).
		Msg("Added to cart")

	return ok(MsgAddedToCart), nil
}

// validateSelection requires a size and color only when the product declares
// any, and only accepts variants that are in stock.
func validateSelection(p catalog.Product, size, color string) (Result, bool) {
	if p.HasSizes() {
		if size == "" {
			return fail(MsgSelectSize), false
		}
		if !p.SizeInStock(size) {
			return fail(MsgSizeOutOfStock), false
		}
	}
	if p.HasColors() {
		if color == "" {
			return fail(MsgSelectColor), false
		}
		if !p.ColorInStock(color) {
			return fail(MsgColorOutOfStock), false
		}
	}
	return Result{Success: true}, true
}
