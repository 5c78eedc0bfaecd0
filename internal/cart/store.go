package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"storefront-be/internal/kvstore"
	"storefront-be/internal/logger"
	"storefront-be/internal/notify"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"
	"storefront-be/internal/promo"

	"go.uber.org/zap"
)

// Persistence keys, one per independently restorable slice of state.
const (
	keyCart          = "cart"
	keyWishlist      = "wishlist"
	keyPromoCode     = "promoCode"
	keyPromoDiscount = "promoDiscount"
)

// Store owns the cart line items, the wishlist id set and the active promo
// code for one browser session. Commands are serialized by a mutex so each
// mutation is atomic; every mutation is followed by a write-through to the
// key-value store, and the store restores itself from it at construction.
//
// Monetary getters are pure projections of the current snapshot; nothing
// derived is ever cached.
type Store struct {
	registry *promo.Registry
	kv       kvstore.Store
	notifier notify.Notifier
	taxRate  float64

	mu            sync.Mutex
	items         []Item
	wishlist      []int
	promoCode     string
	promoDiscount float64
}

func NewStore(ctx context.Context, kv kvstore.Store, registry *promo.Registry, notifier notify.Notifier, taxRate float64) *Store {
	s := &Store{
		registry: registry,
		kv:       kv,
		notifier: notifier,
		taxRate:  taxRate,
	}
	s.restore(ctx)
	return s
}

// restore loads each persisted slice independently; a missing or malformed
// slice falls back to its empty default rather than failing startup.
func (s *Store) restore(ctx context.Context) {
	log := logger.FromCtx(ctx)

	if raw, ok, err := s.kv.Get(ctx, keyCart); err == nil && ok {
		var items []Item
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			s.items = items
		} else {
			log.Warn("discarding malformed persisted cart", zap.Error(err))
		}
	}

	if raw, ok, err := s.kv.Get(ctx, keyWishlist); err == nil && ok {
		var ids []int
		if err := json.Unmarshal([]byte(raw), &ids); err == nil {
			s.wishlist = ids
		} else {
			log.Warn("discarding malformed persisted wishlist", zap.Error(err))
		}
	}

	code, ok, err := s.kv.Get(ctx, keyPromoCode)
	if err != nil || !ok || code == "" {
		return
	}
	rawDiscount, ok, err := s.kv.Get(ctx, keyPromoDiscount)
	if err != nil || !ok {
		return
	}
	discount, err := strconv.ParseFloat(rawDiscount, 64)
	if err != nil {
		log.Warn("discarding malformed persisted promo discount", zap.Error(err))
		return
	}
	s.promoCode = code
	s.promoDiscount = discount
}

// Add merges by the (product id, color, size) identity triple, otherwise
// appends a new line. The resulting quantity is clamped at available stock.
func (s *Store) Add(ctx context.Context, p product.Product, quantity int, color, size string) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].sameVariant(p.ID, color, size) {
			s.items[i].Quantity = clampAtStock(s.items[i].Quantity+quantity, p.Stock)
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{
			Product:       p,
			Quantity:      clampAtStock(quantity, p.Stock),
			SelectedColor: color,
			SelectedSize:  size,
		})
	}
	s.persistCart(ctx)
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("Added %d %s to cart", quantity, p.Title))
}

// Remove drops every line with the product id, regardless of the selected
// color or size variant.
func (s *Store) Remove(ctx context.Context, productID int) {
	s.mu.Lock()
	s.removeLocked(ctx, productID)
	s.mu.Unlock()

	s.notifier.Info("Item removed from cart")
}

func (s *Store) removeLocked(ctx context.Context, productID int) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persistCart(ctx)
}

// UpdateQuantity sets the quantity on every line with the product id. A
// quantity of zero or less removes the item instead.
func (s *Store) UpdateQuantity(ctx context.Context, productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
		}
	}
	s.persistCart(ctx)
}

// Clear empties the line items and drops the active promo code.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.promoCode = ""
	s.promoDiscount = 0
	s.persistCart(ctx)
	s.persistPromo(ctx)
	s.mu.Unlock()

	s.notifier.Info("Cart cleared")
}

// ToggleWishlist adds the id if absent, removes it if present, and reports
// whether the product ended up on the wishlist.
func (s *Store) ToggleWishlist(ctx context.Context, productID int) bool {
	s.mu.Lock()
	added := true
	kept := s.wishlist[:0]
	for _, id := range s.wishlist {
		if id == productID {
			added = false
			continue
		}
		kept = append(kept, id)
	}
	s.wishlist = kept
	if added {
		s.wishlist = append(s.wishlist, productID)
	}
	s.persistWishlist(ctx)
	s.mu.Unlock()

	if added {
		s.notifier.Success("Added to wishlist")
	} else {
		s.notifier.Info("Removed from wishlist")
	}
	return added
}

// ApplyPromo validates the code against the registry. On a hit the code and
// its resolved percentage replace any active promo; on a miss state is left
// unchanged. The resolved percentage is fixed at apply time and never looked
// up again.
func (s *Store) ApplyPromo(ctx context.Context, code string) bool {
	p, ok := s.registry.Validate(code)
	if !ok {
		s.notifier.Error("Invalid promo code: " + code)
		return false
	}

	s.mu.Lock()
	s.promoCode = p.Code
	s.promoDiscount = p.Discount
	s.persistPromo(ctx)
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("Promo code %s applied for %g%% off", p.Code, p.Discount))
	return true
}

// RemovePromo clears the active promo code and discount.
func (s *Store) RemovePromo(ctx context.Context) {
	s.mu.Lock()
	s.promoCode = ""
	s.promoDiscount = 0
	s.persistPromo(ctx)
	s.mu.Unlock()

	s.notifier.Info("Promo code removed")
}

// Items returns a snapshot copy of the cart lines.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Wishlist returns a snapshot copy of the wishlist ids.
func (s *Store) Wishlist() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// InWishlist reports wishlist membership for a product id.
func (s *Store) InWishlist(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// Promo returns the active promo code and its resolved discount percentage;
// an empty code means no promo is active.
func (s *Store) Promo() (string, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promoCode, s.promoDiscount
}

// TotalItems sums quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums price x quantity using the undiscounted list price. The
// product-level discount percentage affects per-line display only; this
// preserves the storefront's running-total behavior.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

func (s *Store) subtotalLocked() float64 {
	subtotal := 0.0
	for _, item := range s.items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// Totals projects the current snapshot through the promo percentage and tax
// rate.
func (s *Store) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.ComputeTotals(s.subtotalLocked(), s.promoDiscount, s.taxRate)
}

func (s *Store) Discount() float64 { return s.Totals().Discount }
func (s *Store) Tax() float64      { return s.Totals().Tax }
func (s *Store) Total() float64    { return s.Totals().Total }

// Persistence writes are ordered after the in-memory mutation and are
// fire-and-forget: failures are logged, never surfaced to the caller.
// Callers hold s.mu.

func (s *Store) persistCart(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err == nil {
		err = s.kv.Set(ctx, keyCart, string(data))
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to persist cart", zap.Error(err))
	}
}

func (s *Store) persistWishlist(ctx context.Context) {
	data, err := json.Marshal(s.wishlist)
	if err == nil {
		err = s.kv.Set(ctx, keyWishlist, string(data))
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to persist wishlist", zap.Error(err))
	}
}

func (s *Store) persistPromo(ctx context.Context) {
	var err error
	if s.promoCode != "" {
		err = s.kv.Set(ctx, keyPromoCode, s.promoCode)
		if err == nil {
			err = s.kv.Set(ctx, keyPromoDiscount, strconv.FormatFloat(s.promoDiscount, 'f', -1, 64))
		}
	} else {
		err = s.kv.Remove(ctx, keyPromoCode)
		if err == nil {
			err = s.kv.Remove(ctx, keyPromoDiscount)
		}
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to persist promo code", zap.Error(err))
	}
}

func clampAtStock(quantity, stock int) int {
	if stock > 0 && quantity > stock {
		return stock
	}
	return quantity
}
