package query

import (
	"errors"
	"fmt"

	"github.com/tair/storefront-state/internal/auth"
	"github.com/tair/storefront-state/internal/order"
)

// ErrNotSignedIn is returned when the history is asked for without a session.
var ErrNotSignedIn = errors.New("not signed in")

// OrderHistoryHandler handles order history query
type OrderHistoryHandler struct {
	auth   *auth.Store
	orders *order.Store
}

// NewOrderHistoryHandler creates a new order history handler
func NewOrderHistoryHandler(a *auth.Store, orders *order.Store) *OrderHistoryHandler {
	return &OrderHistoryHandler{auth: a, orders: orders}
}

// Handle returns the signed-in user's orders, most recent first.
func (h *OrderHistoryHandler) Handle() ([]order.Order, error) {
	user, ok := h.auth.User()
	if !ok || !h.auth.IsAuthenticated() {
		return nil, ErrNotSignedIn
	}
	return h.orders.GetOrdersByUserID(user.ID), nil
}

// GetOrderQuery represents the query to get one order
type GetOrderQuery struct {
	OrderID string
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	orders *order.Store
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(orders *order.Store) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(q GetOrderQuery) (order.Order, error) {
	if q.OrderID == "" {
		return order.Order{}, fmt.Errorf("order id is required")
	}
	o, found := h.orders.GetOrderByID(q.OrderID)
	if !found {
		return order.Order{}, fmt.Errorf("order %s not found", q.OrderID)
	}
	return o, nil
}
