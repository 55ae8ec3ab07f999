// Package pricing derives shipping, tax and grand total from a cart snapshot.
package pricing

import (
	"fmt"
	"math"

	"github.com/tair/storefront-state/internal/cart"
)

// Policy holds the shipping and tax rules.
type Policy struct {
	// FreeShippingThreshold is the subtotal at or above which shipping is free.
	FreeShippingThreshold float64
	// FlatShipping is charged below the threshold.
	FlatShipping float64
	// TaxRate is applied to the subtotal.
	TaxRate float64
}

// DefaultPolicy returns free shipping from $100, $10 flat otherwise, 10% tax.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: 100,
		FlatShipping:          10,
		TaxRate:               0.10,
	}
}

// Validate rejects negative amounts.
func (p Policy) Validate() error {
	if p.FreeShippingThreshold < 0 {
		return fmt.Errorf("free shipping threshold cannot be negative")
	}
	if p.FlatShipping < 0 {
		return fmt.Errorf("flat shipping cannot be negative")
	}
	if p.TaxRate < 0 {
		return fmt.Errorf("tax rate cannot be negative")
	}
	return nil
}

// Totals is the derived price breakdown of a cart.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Shipping returns the shipping charge for subtotal.
func (p Policy) Shipping(subtotal float64) float64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShipping
}

// Tax returns the tax for subtotal.
func (p Policy) Tax(subtotal float64) float64 {
	return subtotal * p.TaxRate
}

// Calculate prices items. Values keep full precision; round with Round2
// when presenting.
func (p Policy) Calculate(items []cart.LineItem) Totals {
	subtotal := cart.Subtotal(items)
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// AmountToFreeShipping is how much more the customer must spend to get
// free shipping; zero once the threshold is reached.
func (p Policy) AmountToFreeShipping(subtotal float64) float64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.FreeShippingThreshold - subtotal
}

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns t with every amount rounded to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: Round2(t.Subtotal),
		Shipping: Round2(t.Shipping),
		Tax:      Round2(t.Tax),
		Total:    Round2(t.Total),
	}
}

// FormatPrice renders v as "$12.00".
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", Round2(v))
}
