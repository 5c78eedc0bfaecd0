package cart

import "storefront-be/internal/product"

// Item is one distinct (product, color, size) entry in the cart with its own
// quantity. Two additions of the same product with different variant
// selections are distinct items.
type Item struct {
	product.Product
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor,omitempty"`
	SelectedSize  string `json:"selectedSize,omitempty"`
}

// sameVariant reports whether the item matches the identity triple used for
// deduplication.
func (i Item) sameVariant(productID int, color, size string) bool {
	return i.ID == productID && i.SelectedColor == color && i.SelectedSize == size
}
