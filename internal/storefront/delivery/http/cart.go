package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/internal/storefront/usecase/command"
	"github.com/tair/storefront-state/pkg/logger"
)

// GetCart handles GET /cart
func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondData(w, http.StatusOK, h.app.Queries.CartSummary.Handle())
}

// AddCartItem handles POST /cart/items
func (h *StorefrontHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product  catalog.Product `json:"product"`
		Size     string          `json:"size"`
		Color    string          `json:"color"`
		Quantity int             `json:"quantity"`
	}
	if err := decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Product.ID == 0 {
		h.respondError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	res, err := h.app.Commands.AddToCart.Handle(r.Context(), command.AddToCartCommand{
		Product:  req.Product,
		Size:     req.Size,
		Color:    req.Color,
		Quantity: req.Quantity,
	})
	h.respondResult(w, r, res, err)
}

// UpdateCartItem handles PATCH /cart/items/{lineId}
func (h *StorefrontHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	lineID := mux.Vars(r)["lineId"]

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := decode(r, &req); err != nil || req.Quantity == nil {
		h.respondError(w, http.StatusBadRequest, "Quantity is required")
		return
	}

	if _, found := h.app.Cart.Item(lineID); !found {
		h.respondError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	err := h.app.Cart.UpdateQuantity(r.Context(), lineID, *req.Quantity)
	if errors.Is(err, cart.ErrInvalidQuantity) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

// RemoveCartItem handles DELETE /cart/items/{lineId}
func (h *StorefrontHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Cart.RemoveItem(r.Context(), mux.Vars(r)["lineId"]); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

// ClearCart handles DELETE /cart
func (h *StorefrontHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Cart.ClearCart(r.Context()); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

// respondResult maps a command Result to a response: 200 on success, 400
// when the shopper has to fix something.
func (h *StorefrontHandler) respondResult(w http.ResponseWriter, r *http.Request, res command.Result, err error) {
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	h.respondJSON(w, status, Response{Success: res.Success, Message: res.Message})
}

// respondStoreError reports a persistence failure. The in-memory change has
// already been applied at this point.
func (h *StorefrontHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("State change not persisted")
	h.respondError(w, http.StatusInternalServerError, "Failed to save state")
}

func productIDVar(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["productId"])
}
