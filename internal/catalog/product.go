// Package catalog holds the product shapes supplied by the data-fetch layer.
// The stores read these values and never mutate them.
package catalog

// Size is a selectable size variant.
type Size struct {
	Name    string `json:"name"`
	InStock bool   `json:"inStock"`
}

// Color is a selectable color variant.
type Color struct {
	Name    string `json:"name"`
	Hex     string `json:"hex"`
	InStock bool   `json:"inStock"`
}

// Rating is the aggregate review score shown on product cards.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents a catalog product
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Rating      *Rating `json:"rating,omitempty"`
	Sizes       []Size  `json:"sizes,omitempty"`
	Colors      []Color `json:"colors,omitempty"`
}

// HasSizes reports whether a size must be chosen before adding to cart.
func (p Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// HasColors reports whether a color must be chosen before adding to cart.
func (p Product) HasColors() bool {
	return len(p.Colors) > 0
}

// SizeInStock reports whether the named size exists and is in stock.
func (p Product) SizeInStock(name string) bool {
	for _, s := range p.Sizes {
		if s.Name == name {
			return s.InStock
		}
	}
	return false
}

// ColorInStock reports whether the named color exists and is in stock.
func (p Product) ColorInStock(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return c.InStock
		}
	}
	return false
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	out := p
	if p.Rating != nil {
		r := *p.Rating
		out.Rating = &r
	}
	if p.Sizes != nil {
		out.Sizes = append([]Size(nil), p.Sizes...)
	}
	if p.Colors != nil {
		out.Colors = append([]Color(nil), p.Colors...)
	}
	return out
}
