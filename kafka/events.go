package kafka

import "time"

// OrderEvent is published when an order is placed or changes status, and
// consumed when fulfillment reports a status change.
type OrderEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	OrderID        string    `json:"order_id"`
	UserID         int       `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Total          float64   `json:"total"`
	ItemCount      int       `json:"item_count"`
	PaymentMethod  string    `json:"payment_method,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// Kafka topics
const (
	TopicOrders      = "storefront-orders"
	TopicFulfillment = "storefront-fulfillment"
)
