package httpapi

import (
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
)

// Router wires the command surface behind the request-id, logging and
// rate-limit middleware chain.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("GET /api/categories", h.listCategories)

	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addCartItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.updateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.removeCartItem)
	mux.HandleFunc("POST /api/cart/clear", h.clearCart)

	mux.HandleFunc("POST /api/cart/promo", h.applyPromo)
	mux.HandleFunc("DELETE /api/cart/promo", h.removePromo)

	mux.HandleFunc("GET /api/wishlist", h.getWishlist)
	mux.HandleFunc("POST /api/wishlist/{id}", h.toggleWishlist)

	mux.HandleFunc("POST /api/checkout", h.submitCheckout)

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}
