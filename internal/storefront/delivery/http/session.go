package http

import (
	"net/http"
	"time"

	"github.com/tair/storefront-state/internal/auth"
	"github.com/tair/storefront-state/pkg/logger"
)

type sessionView struct {
	Authenticated bool              `json:"authenticated"`
	User          *auth.User        `json:"user,omitempty"`
	IsLoading     bool              `json:"isLoading"`
	Claims        *auth.TokenClaims `json:"claims,omitempty"`
}

func (h *StorefrontHandler) session() sessionView {
	view := sessionView{
		Authenticated: h.app.Auth.IsAuthenticated(),
		IsLoading:     h.app.Auth.IsLoading(),
	}
	if u, ok := h.app.Auth.User(); ok {
		view.User = &u
	}
	if token, ok := h.app.Auth.Token(); ok {
		if claims, err := auth.ParseTokenClaims(token); err == nil {
			view.Claims = &claims
		}
	}
	return view
}

// GetSession handles GET /session
func (h *StorefrontHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respondData(w, http.StatusOK, h.session())
}

// SignIn handles POST /session. The caller has already authenticated
// against the API and hands over the user and token it got back.
func (h *StorefrontHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User  *auth.User `json:"user"`
		Token string     `json:"token"`
	}
	if err := decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.User == nil || req.User.ID == 0 || req.Token == "" {
		h.respondError(w, http.StatusBadRequest, "User and token are required")
		return
	}

	// Opaque tokens are accepted as is; only a readable expiry is enforced.
	if claims, err := auth.ParseTokenClaims(req.Token); err == nil && claims.Expired(time.Now()) {
		h.respondError(w, http.StatusUnauthorized, "Session token has expired")
		return
	}

	ctx := r.Context()
	if err := h.app.Auth.SetUser(ctx, req.User); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	if err := h.app.Auth.SetToken(ctx, req.Token); err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	logger.Info(ctx).Int("user_id", req.User.ID).Msg("Signed in")
	h.respondData(w, http.StatusOK, h.session())
}

// SignOut handles DELETE /session
func (h *StorefrontHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Auth.Logout(r.Context()); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.respondData(w, http.StatusOK, h.session())
}
