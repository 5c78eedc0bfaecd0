package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"
	"storefront-be/internal/session"
)

const sessionCookie = "sf_session"

// Handler exposes the storefront command surface to the rendering layer as
// JSON over HTTP.
type Handler struct {
	cfg      *config.Config
	catalog  catalog.Source
	sessions *session.Manager
	checkout checkout.Service
}

func New(cfg *config.Config, source catalog.Source, sessions *session.Manager, checkoutSvc checkout.Service) *Handler {
	return &Handler{
		cfg:      cfg,
		catalog:  source,
		sessions: sessions,
		checkout: checkoutSvc,
	}
}

// cartStore resolves the caller's session store, minting a session cookie on
// first contact.
func (h *Handler) cartStore(w http.ResponseWriter, r *http.Request) *cart.Store {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	} else {
		id = session.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
		})
	}
	return h.sessions.Store(r.Context(), id)
}

type cartView struct {
	Items         []cart.Item    `json:"items"`
	TotalItems    int            `json:"totalItems"`
	PromoCode     string         `json:"promoCode,omitempty"`
	PromoDiscount float64        `json:"promoDiscount"`
	Totals        pricing.Totals `json:"totals"`
}

func (h *Handler) viewOf(s *cart.Store) cartView {
	code, discount := s.Promo()
	return cartView{
		Items:         s.Items(),
		TotalItems:    s.TotalItems(),
		PromoCode:     code,
		PromoDiscount: discount,
		Totals:        s.Totals(),
	}
}

// --- Products ---

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	criteria := parseCriteria(r)
	resp := h.catalog.ListProducts(r.Context(), h.cfg.CatalogFetchLimit, 0)
	result := product.ApplyCriteria(resp.Products, criteria, h.cfg.PageSize)

	page := criteria.Page
	if page <= 0 {
		page = 1
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":         result.Items,
		"totalPages":    result.TotalPages,
		"totalMatching": result.TotalMatching,
		"page":          page,
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p := h.catalog.GetProduct(r.Context(), id)
	if p == nil {
		writeJSONError(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.catalog.ListCategories(r.Context()),
	})
}

// parseCriteria maps query parameters onto the pipeline criteria. Page
// defaults to 1; the rendering layer re-requests page 1 whenever it changes
// any other criterion.
func parseCriteria(r *http.Request) product.Criteria {
	q := r.URL.Query()

	criteria := product.Criteria{
		Search:     q.Get("q"),
		Categories: q["category"],
		Brands:     q["brand"],
		Sort:       product.SortKey(q.Get("sort")),
		Page:       1,
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		criteria.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		criteria.MaxPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("minRating"), 64); err == nil {
		criteria.MinRating = v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		criteria.Page = v
	}
	return criteria
}

// --- Cart ---

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.viewOf(h.cartStore(w, r)))
}

type addItemRequest struct {
	ProductID     int    `json:"productId"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		writeJSONError(w, "quantity must be at least 1", http.StatusBadRequest)
		return
	}

	p := h.catalog.GetProduct(r.Context(), req.ProductID)
	if p == nil {
		writeJSONError(w, "product not found", http.StatusNotFound)
		return
	}

	store := h.cartStore(w, r)
	store.Add(r.Context(), *p, req.Quantity, req.SelectedColor, req.SelectedSize)
	writeJSON(w, http.StatusOK, h.viewOf(store))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	store := h.cartStore(w, r)
	store.UpdateQuantity(r.Context(), id, req.Quantity)
	writeJSON(w, http.StatusOK, h.viewOf(store))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	store := h.cartStore(w, r)
	store.Remove(r.Context(), id)
	writeJSON(w, http.StatusOK, h.viewOf(store))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	store := h.cartStore(w, r)
	store.Clear(r.Context())
	writeJSON(w, http.StatusOK, h.viewOf(store))
}

// --- Promo ---

type promoRequest struct {
	Code string `json:"code"`
}

func (h *Handler) applyPromo(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Empty or whitespace-only codes are rejected here, before the store is
	// ever invoked.
	code := strings.TrimSpace(req.Code)
	if code == "" {
		writeJSONError(w, "promo code is required", http.StatusBadRequest)
		return
	}

	store := h.cartStore(w, r)
	if !store.ApplyPromo(r.Context(), code) {
		writeJSONError(w, "invalid promo code", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.viewOf(store))
}

func (h *Handler) removePromo(w http.ResponseWriter, r *http.Request) {
	store := h.cartStore(w, r)
	store.RemovePromo(r.Context())
	writeJSON(w, http.StatusOK, h.viewOf(store))
}

// --- Wishlist ---

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	store := h.cartStore(w, r)
	writeJSON(w, http.StatusOK, map[string]any{"wishlist": store.Wishlist()})
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	store := h.cartStore(w, r)
	added := store.ToggleWishlist(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]any{
		"added":    added,
		"wishlist": store.Wishlist(),
	})
}

// --- Checkout ---

func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	store := h.cartStore(w, r)
	confirmation, fieldErrs, err := h.checkout.Submit(r.Context(), store, form)
	if err != nil {
		writeJSONError(w, "checkout aborted", http.StatusServiceUnavailable)
		return
	}
	if fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
		return
	}
	writeJSON(w, http.StatusOK, confirmation)
}
