package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/tair/storefront-state/internal/auth"
	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/order"
	"github.com/tair/storefront-state/internal/pricing"
	"github.com/tair/storefront-state/kafka"
	"github.com/tair/storefront-state/pkg/logger"
)

// DefaultPaymentMethod is used when the shopper picked none.
const DefaultPaymentMethod = "card"

// PlaceOrderCommand represents the command to check out the current cart
type PlaceOrderCommand struct {
	// AddressID selects a saved address; empty means the default one.
	AddressID     string
	PaymentMethod string
}

// OrderResult carries the placed or updated order alongside the message.
type OrderResult struct {
	Result
	Order *order.Order `json:"order,omitempty"`
}

// PlaceOrderHandler handles place order command
type PlaceOrderHandler struct {
	// mu serializes checkouts so one cart snapshot is never ordered twice.
	mu sync.Mutex

	auth      *auth.Store
	cart      *cart.Store
	orders    *order.Store
	policy    pricing.Policy
	publisher OrderEventPublisher
}

// NewPlaceOrderHandler creates a new place order handler
func NewPlaceOrderHandler(
	authStore *auth.Store,
	cartStore *cart.Store,
	orders *order.Store,
	policy pricing.Policy,
	publisher OrderEventPublisher,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		auth:      authStore,
		cart:      cartStore,
		orders:    orders,
		policy:    policy,
		publisher: publisher,
	}
}

// Handle snapshots the cart into a pending order, takes the ordered lines
// out of the cart and announces the order. Items added to the cart while
// the order is being placed stay in the cart.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (OrderResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	user, signedIn := h.auth.User()
	if !signedIn || !h.auth.IsAuthenticated() {
		return OrderResult{Result: fail(MsgSignInToOrder)}, nil
	}

	items := h.cart.Items()
	if len(items) == 0 {
		return OrderResult{Result: fail(MsgCartEmpty)}, nil
	}

	var (
		address auth.Address
		found   bool
	)
	if cmd.AddressID != "" {
		address, found = h.auth.Address(cmd.AddressID)
	} else {
		address, found = h.auth.GetDefaultAddress()
	}
	if !found {
		return OrderResult{Result: fail(MsgSelectAddress)}, nil
	}

	if cmd.PaymentMethod == "" {
		cmd.PaymentMethod = DefaultPaymentMethod
	}

	totals := h.policy.Calculate(items).Rounded()
	placed, err := h.orders.AddOrder(ctx, order.Draft{
		UserID:          user.ID,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Status:          order.StatusPending,
		ShippingAddress: address,
		PaymentMethod:   cmd.PaymentMethod,
	})
	if err != nil {
		return OrderResult{Result: fail(err.Error())}, fmt.Errorf("failed to place order: %w", err)
	}

	if err := h.cart.RemoveOrdered(ctx, items); err != nil {
		return OrderResult{Result: ok(MsgOrderPlaced), Order: &placed}, fmt.Errorf("failed to clear cart: %w", err)
	}

	event := kafka.OrderEvent{
		EventType:     kafka.EventTypeOrderPlaced,
		OrderID:       placed.ID,
		UserID:        placed.UserID,
		Status:        string(placed.Status),
		Total:         placed.Total,
		ItemCount:     placed.ItemCount(),
		PaymentMethod: placed.PaymentMethod,
		Timestamp:     placed.CreatedAt,
	}
	if err := h.publisher.PublishOrderEvent(ctx, event); err != nil {
		// The order is already stored locally; delivery is best effort.
		logger.Error(ctx).
			Err(err).
			Str("order_id", placed.ID).
			Msg("Failed to publish order placed event")
	}

	logger.Info(ctx).
		Str("order_id", placed.ID).
		Int("user_id", placed.UserID).
		Float64("total", placed.Total).
		Int("item_count", placed.ItemCount()).
		Msg("Order placed")

	return OrderResult{Result: ok(MsgOrderPlaced), Order: &placed}, nil
}
