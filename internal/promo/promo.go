package promo

// PromoCode maps a user-entered token to a percentage discount.
type PromoCode struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// Registry is a fixed lookup of valid promo codes. Contents are never
// persisted; the registry is recreated identically every session.
type Registry struct {
	codes map[string]float64
}

func NewRegistry(entries []PromoCode) *Registry {
	codes := make(map[string]float64, len(entries))
	for _, e := range entries {
		codes[e.Code] = e.Discount
	}
	return &Registry{codes: codes}
}

// DefaultRegistry returns the registry with the seed promo codes.
func DefaultRegistry() *Registry {
	return NewRegistry([]PromoCode{
		{Code: "SUMMER10", Discount: 10},
		{Code: "WELCOME20", Discount: 20},
		{Code: "FLASH50", Discount: 50},
	})
}

// Validate looks up a code with an exact, case-sensitive match.
func (r *Registry) Validate(code string) (PromoCode, bool) {
	discount, ok := r.codes[code]
	if !ok {
		return PromoCode{}, false
	}
	return PromoCode{Code: code, Discount: discount}, true
}
