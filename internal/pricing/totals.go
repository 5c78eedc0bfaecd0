package pricing

// Totals is the derived monetary projection of a cart snapshot. Values are
// always recomputed from line items and the active promo, never stored.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals projects the subtotal through the active promo percentage and
// tax rate. The discount applies to the subtotal; tax applies to the
// discounted amount.
func ComputeTotals(subtotal, promoDiscountPercentage, taxRate float64) Totals {
	discount := (subtotal * promoDiscountPercentage) / 100
	tax := (subtotal - discount) * taxRate
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal - discount + tax,
	}
}
