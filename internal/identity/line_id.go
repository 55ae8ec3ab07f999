// Package identity derives the composite key that makes two cart lines the
// same line.
package identity

import "strconv"

// None stands in for an unselected size or color.
const None = "none"

// LineID returns "{productID}-{size|none}-{color|none}".
func LineID(productID int, size, color string) string {
	if size == "" {
		size = None
	}
	if color == "" {
		color = None
	}
	return strconv.Itoa(productID) + "-" + size + "-" + color
}
