package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/storefront-state/internal/order"
	"github.com/tair/storefront-state/internal/storefront/usecase/command"
	"github.com/tair/storefront-state/internal/storefront/usecase/query"
)

// PlaceOrder handles POST /orders
func (h *StorefrontHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AddressID     string `json:"addressId"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	res, err := h.app.Commands.PlaceOrder.Handle(r.Context(), command.PlaceOrderCommand{
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil && res.Order == nil {
		h.respondStoreError(w, r, err)
		return
	}

	switch {
	case res.Success:
		h.respondJSON(w, http.StatusCreated, Response{Success: true, Message: res.Message, Data: res.Order})
	case res.Message == command.MsgSignInToOrder:
		h.respondJSON(w, http.StatusUnauthorized, Response{Success: false, Message: res.Message})
	default:
		h.respondJSON(w, http.StatusBadRequest, Response{Success: false, Message: res.Message})
	}
}

// ListOrders handles GET /orders
func (h *StorefrontHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.app.Queries.OrderHistory.Handle()
	if errors.Is(err, query.ErrNotSignedIn) {
		h.respondError(w, http.StatusUnauthorized, "Please sign in to see your orders")
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondData(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id}
func (h *StorefrontHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.app.Queries.GetOrder.Handle(query.GetOrderQuery{OrderID: mux.Vars(r)["id"]})
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	h.respondData(w, http.StatusOK, o)
}

// UpdateOrderStatus handles PATCH /orders/{id}/status
func (h *StorefrontHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status order.Status `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Status.Valid() {
		h.respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	res, err := h.app.Commands.UpdateOrderStatus.Handle(r.Context(), command.UpdateOrderStatusCommand{
		OrderID: mux.Vars(r)["id"],
		Status:  req.Status,
	})
	h.respondOrderResult(w, r, res, err)
}

// CancelOrder handles POST /orders/{id}/cancel
func (h *StorefrontHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.app.Commands.CancelOrder.Handle(r.Context(), command.CancelOrderCommand{
		OrderID: mux.Vars(r)["id"],
	})
	h.respondOrderResult(w, r, res, err)
}

func (h *StorefrontHandler) respondOrderResult(w http.ResponseWriter, r *http.Request, res command.OrderResult, err error) {
	switch {
	case errors.Is(err, command.ErrOrderNotFound):
		h.respondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, order.ErrInvalidStatusTransition):
		h.respondError(w, http.StatusConflict, err.Error())
	case err != nil:
		h.respondStoreError(w, r, err)
	default:
		h.respondJSON(w, http.StatusOK, Response{Success: true, Message: res.Message, Data: res.Order})
	}
}
