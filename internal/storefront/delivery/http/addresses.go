package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/storefront-state/internal/auth"
)

// ListAddresses handles GET /addresses
func (h *StorefrontHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	h.respondData(w, http.StatusOK, h.app.Auth.Addresses())
}

// AddAddress handles POST /addresses. A missing id is generated.
func (h *StorefrontHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var addr auth.Address
	if err := decode(r, &addr); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if addr.ID == "" {
		addr.ID = auth.NewAddressID()
	}
	if addr.UserID == 0 {
		addr.UserID = h.currentUserID()
	}

	if err := h.app.Auth.AddAddress(r.Context(), addr); err != nil {
		if errors.Is(err, auth.ErrDuplicateAddress) {
			h.respondError(w, http.StatusConflict, "Address ID already in use")
			return
		}
		h.respondStoreError(w, r, err)
		return
	}
	created, _ := h.app.Auth.Address(addr.ID)
	h.respondData(w, http.StatusCreated, created)
}

// UpdateAddress handles PATCH /addresses/{id}
func (h *StorefrontHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, exists := h.app.Auth.Address(id); !exists {
		h.respondError(w, http.StatusNotFound, "Address not found")
		return
	}

	var patch auth.AddressPatch
	if err := decode(r, &patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.app.Auth.UpdateAddress(r.Context(), id, patch); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	updated, _ := h.app.Auth.Address(id)
	h.respondData(w, http.StatusOK, updated)
}

// RemoveAddress handles DELETE /addresses/{id}
func (h *StorefrontHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Auth.RemoveAddress(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.ListAddresses(w, r)
}

// SetDefaultAddress handles POST /addresses/{id}/default
func (h *StorefrontHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, exists := h.app.Auth.Address(id); !exists {
		h.respondError(w, http.StatusNotFound, "Address not found")
		return
	}
	if err := h.app.Auth.SetDefaultAddress(r.Context(), id); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.ListAddresses(w, r)
}
