// Package order owns the list of placed orders, most recent first.
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/tair/storefront-state/internal/auth"
	"github.com/tair/storefront-state/internal/cart"
)

// Namespace is the persistence key of the order state.
const Namespace = "order-storage"

// Status is the fulfillment state of an order.
type Status string

// Order statuses
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ErrInvalidStatusTransition is returned when a status change would move an
// order backwards or out of a terminal state.
var ErrInvalidStatusTransition = errors.New("invalid order status transition")

var rank = map[Status]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := rank[s]
	return ok || s == StatusCancelled
}

// IsTerminal reports whether no further change is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether an order in s may move to next. Orders
// only move forward along pending, processing, shipped, delivered, and can
// be cancelled from any non-terminal status. Staying put is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return rank[next] > rank[s]
}

// Order is a placed order. Items is a snapshot taken at placement time and
// is never affected by later cart changes.
type Order struct {
	ID              string          `json:"id"`
	UserID          int             `json:"userId"`
	Items           []cart.LineItem `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Tax             float64         `json:"tax"`
	Total           float64         `json:"total"`
	Status          Status          `json:"status"`
	ShippingAddress auth.Address    `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ItemCount sums line quantities.
func (o Order) ItemCount() int {
	return cart.ItemCount(o.Items)
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	out := o
	out.Items = cart.Snapshot(o.Items)
	return out
}

// Draft is everything needed to place an order except id and timestamps.
type Draft struct {
	UserID          int
	Items           []cart.LineItem
	Subtotal        float64
	Shipping        float64
	Tax             float64
	Total           float64
	Status          Status
	ShippingAddress auth.Address
	PaymentMethod   string
}

// State is the persisted order document: {"orders": [...]}.
type State struct {
	Orders []Order `json:"orders"`
}

func transitionError(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
}
