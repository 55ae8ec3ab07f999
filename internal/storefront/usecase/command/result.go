package command

import (
	"context"
	"errors"

	"github.com/tair/storefront-state/kafka"
)

// Result is the outcome of a user action, shown to the shopper as is.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// User-facing messages
const (
	MsgSelectSize          = "Please select a size"
	MsgSelectColor         = "Please select a color"
	MsgSizeOutOfStock      = "Selected size is out of stock"
	MsgColorOutOfStock     = "Selected color is out of stock"
	MsgAddedToCart         = "Added to cart"
	MsgAlreadyInWishlist   = "Already in wishlist"
	MsgAddedToWishlist     = "Added to wishlist"
	MsgRemovedFromWishlist = "Removed from wishlist"
	MsgMovedToCart         = "Moved to cart"
	MsgCartEmpty           = "Your cart is empty"
	MsgSelectAddress       = "Please select a shipping address"
	MsgSignInToOrder       = "Please sign in to place an order"
	MsgOrderPlaced         = "Order placed successfully"
	MsgOrderUpdated        = "Order status updated"
	MsgOrderCancelled      = "Order cancelled"
)

// ErrOrderNotFound is returned by order commands for unknown ids.
var ErrOrderNotFound = errors.New("order not found")

func ok(msg string) Result   { return Result{Success: true, Message: msg} }
func fail(msg string) Result { return Result{Success: false, Message: msg} }

// OrderEventPublisher receives order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event kafka.OrderEvent) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

// PublishOrderEvent implements OrderEventPublisher.
func (NoopPublisher) PublishOrderEvent(context.Context, kafka.OrderEvent) error { return nil }
