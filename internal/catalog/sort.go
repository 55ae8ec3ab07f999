package catalog

import (
	"sort"
	"strings"
)

// SortKey selects the ordering used by the browse sort bar.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
	SortNewest    SortKey = "newest"
)

// SortProducts returns a sorted copy of products. Unknown keys and
// SortFeatured keep the incoming order.
func SortProducts(products []Product, key SortKey) []Product {
	out := append([]Product(nil), products...)

	var less func(a, b Product) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b Product) bool { return rate(a) > rate(b) }
	case SortName:
		less = func(a, b Product) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortNewest:
		less = func(a, b Product) bool { return a.ID > b.ID }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func rate(p Product) float64 {
	if p.Rating == nil {
		return 0
	}
	return p.Rating.Rate
}
