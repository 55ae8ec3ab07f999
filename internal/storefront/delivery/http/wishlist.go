package http

import (
	"net/http"

	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/internal/storefront/usecase/command"
)

// GetWishlist handles GET /wishlist
func (h *StorefrontHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	h.respondData(w, http.StatusOK, map[string]interface{}{
		"items": h.app.Wishlist.Items(),
		"count": h.app.Wishlist.GetItemCount(),
	})
}

// AddToWishlist handles POST /wishlist/{productId}
func (h *StorefrontHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := productIDVar(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	res, err := h.app.Commands.AddToWishlist.Handle(r.Context(), command.AddToWishlistCommand{ProductID: id})
	if err == nil && !res.Success {
		// Already saved is not a mistake the shopper has to fix.
		h.respondJSON(w, http.StatusOK, Response{Success: false, Message: res.Message})
		return
	}
	h.respondResult(w, r, res, err)
}

// ToggleWishlist handles POST /wishlist/{productId}/toggle
func (h *StorefrontHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := productIDVar(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	res, err := h.app.Commands.ToggleWishlist.Handle(r.Context(), command.ToggleWishlistCommand{ProductID: id})
	h.respondResult(w, r, res, err)
}

// MoveToCart handles POST /wishlist/{productId}/move-to-cart
func (h *StorefrontHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	id, err := productIDVar(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Product catalog.Product `json:"product"`
		Size    string          `json:"size"`
		Color   string          `json:"color"`
	}
	if err := decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Product.ID != id {
		h.respondError(w, http.StatusBadRequest, "Product does not match path")
		return
	}
	if !h.app.Wishlist.IsInWishlist(id) {
		h.respondError(w, http.StatusNotFound, "Product is not in the wishlist")
		return
	}

	res, err := h.app.Commands.MoveToCart.Handle(r.Context(), command.MoveToCartCommand{
		Product: req.Product,
		Size:    req.Size,
		Color:   req.Color,
	})
	h.respondResult(w, r, res, err)
}

// ClearWishlist handles DELETE /wishlist
func (h *StorefrontHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Wishlist.ClearWishlist(r.Context()); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.GetWishlist(w, r)
}
