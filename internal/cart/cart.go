// Package cart owns the shopping cart line items.
package cart

import (
	"errors"

	"github.com/tair/storefront-state/internal/catalog"
)

// Namespace is the persistence key of the cart state.
const Namespace = "cart-storage"

// ErrInvalidQuantity is returned when a negative quantity is requested.
var ErrInvalidQuantity = errors.New("quantity cannot be negative")

// LineItem is a product with its chosen variant and quantity. At most one
// line exists per (product id, size, color).
type LineItem struct {
	catalog.Product
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
	Quantity      int    `json:"quantity"`
	LineID        string `json:"lineId"`
}

// LineTotal is price times quantity.
func (l LineItem) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Clone returns a copy that shares no slices with l.
func (l LineItem) Clone() LineItem {
	out := l
	out.Product = l.Product.Clone()
	return out
}

// State is the persisted cart document: {"items": [...]}.
type State struct {
	Items []LineItem `json:"items"`
}

// Subtotal sums price times quantity over items.
func Subtotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount sums quantities over items.
func ItemCount(items []LineItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Snapshot deep-copies items so the result is unaffected by later cart changes.
func Snapshot(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
