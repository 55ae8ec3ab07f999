package query

import (
	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/pricing"
)

// CartSummary is the priced view of the cart.
type CartSummary struct {
	Items                []cart.LineItem `json:"items"`
	ItemCount            int             `json:"itemCount"`
	Subtotal             float64         `json:"subtotal"`
	Shipping             float64         `json:"shipping"`
	Tax                  float64         `json:"tax"`
	Total                float64         `json:"total"`
	AmountToFreeShipping float64         `json:"amountToFreeShipping"`
	FreeShipping         bool            `json:"freeShipping"`
}

// CartSummaryHandler handles cart summary query
type CartSummaryHandler struct {
	cart   *cart.Store
	policy pricing.Policy
}

// NewCartSummaryHandler creates a new cart summary handler
func NewCartSummaryHandler(c *cart.Store, policy pricing.Policy) *CartSummaryHandler {
	return &CartSummaryHandler{cart: c, policy: policy}
}

// Handle prices the current cart. Amounts are rounded to cents.
func (h *CartSummaryHandler) Handle() CartSummary {
	items := h.cart.Items()
	totals := h.policy.Calculate(items)
	rounded := totals.Rounded()

	return CartSummary{
		Items:                items,
		ItemCount:            cart.ItemCount(items),
		Subtotal:             rounded.Subtotal,
		Shipping:             rounded.Shipping,
		Tax:                  rounded.Tax,
		Total:                rounded.Total,
		AmountToFreeShipping: pricing.Round2(h.policy.AmountToFreeShipping(totals.Subtotal)),
		FreeShipping:         totals.Shipping == 0,
	}
}
