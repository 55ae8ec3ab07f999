package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront-state/internal/order"
	"github.com/tair/storefront-state/kafka"
	"github.com/tair/storefront-state/pkg/logger"
)

// UpdateOrderStatusCommand represents the command to move an order along
type UpdateOrderStatusCommand struct {
	OrderID string
	Status  order.Status
	// Silent skips the status changed event, for changes that came from
	// fulfillment in the first place.
	Silent bool
}

// UpdateOrderStatusHandler handles update order status command
type UpdateOrderStatusHandler struct {
	orders    *order.Store
	publisher OrderEventPublisher
}

// NewUpdateOrderStatusHandler creates a new update order status handler
func NewUpdateOrderStatusHandler(orders *order.Store, publisher OrderEventPublisher) *UpdateOrderStatusHandler {
	return &UpdateOrderStatusHandler{orders: orders, publisher: publisher}
}

// Handle executes the update order status command. Unknown orders give
// ErrOrderNotFound and illegal moves give order.ErrInvalidStatusTransition.
func (h *UpdateOrderStatusHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (OrderResult, error) {
	current, found := h.orders.GetOrderByID(cmd.OrderID)
	if !found {
		return OrderResult{Result: fail(ErrOrderNotFound.Error())}, fmt.Errorf("%w: %s", ErrOrderNotFound, cmd.OrderID)
	}

	if err := h.orders.UpdateOrderStatus(ctx, cmd.OrderID, cmd.Status); err != nil {
		return OrderResult{Result: fail(err.Error())}, fmt.Errorf("failed to update order status: %w", err)
	}

	updated, _ := h.orders.GetOrderByID(cmd.OrderID)
	logger.Info(ctx).
		Str("order_id", updated.ID).
		Str("from", string(current.Status)).
		Str("to", string(updated.Status)).
		Msg("Order status updated")

	if !cmd.Silent && current.Status != updated.Status {
		event := kafka.OrderEvent{
			EventType:      kafka.EventTypeOrderStatusChanged,
			OrderID:        updated.ID,
			UserID:         updated.UserID,
			Status:         string(updated.Status),
			PreviousStatus: string(current.Status),
			Total:          updated.Total,
			ItemCount:      updated.ItemCount(),
			Timestamp:      updated.UpdatedAt,
		}
		if err := h.publisher.PublishOrderEvent(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("order_id", updated.ID).
				Msg("Failed to publish order status changed event")
		}
	}

	msg := MsgOrderUpdated
	if updated.Status == order.StatusCancelled {
		msg = MsgOrderCancelled
	}
	return OrderResult{Result: ok(msg), Order: &updated}, nil
}

// CancelOrderCommand cancels an order that has not been delivered
type CancelOrderCommand struct {
	OrderID string
}

// CancelOrderHandler handles cancel order command
type CancelOrderHandler struct {
	update *UpdateOrderStatusHandler
}

// NewCancelOrderHandler creates a new cancel order handler
func NewCancelOrderHandler(update *UpdateOrderStatusHandler) *CancelOrderHandler {
	return &CancelOrderHandler{update: update}
}

// Handle executes the cancel order command
func (h *CancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (OrderResult, error) {
	return h.update.Handle(ctx, UpdateOrderStatusCommand{OrderID: cmd.OrderID, Status: order.StatusCancelled})
}

// FulfillmentEventHandler applies status changes reported by fulfillment.
// The change is not announced again.
func FulfillmentEventHandler(update *UpdateOrderStatusHandler) kafka.EventHandler {
	return func(ctx context.Context, event kafka.OrderEvent) error {
		_, err := update.Handle(ctx, UpdateOrderStatusCommand{
			OrderID: event.OrderID,
			Status:  order.Status(event.Status),
			Silent:  true,
		})
		return err
	}
}
