package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront-state/internal/app"
	"github.com/tair/storefront-state/internal/cart"
	"github.com/tair/storefront-state/internal/order"
	"github.com/tair/storefront-state/internal/wishlist"
)

// StorefrontHandler serves the local state API over one container
type StorefrontHandler struct {
	app *app.Container

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	cartItems      prometheus.Gauge
	wishlistItems  prometheus.Gauge
	ordersTotal    prometheus.Gauge

	unsubscribe []func()
}

// Response is the envelope of every JSON reply
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewStorefrontHandler creates a new storefront handler and registers its
// metrics with reg.
func NewStorefrontHandler(c *app.Container, reg prometheus.Registerer) (*StorefrontHandler, error) {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_requests_total",
			Help: "Total number of requests to the storefront state API",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_request_duration_seconds",
			Help:    "Duration of storefront state API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	cartItems := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_items",
		Help: "Number of units in the cart",
	})
	wishlistItems := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_wishlist_items",
		Help: "Number of saved products",
	})
	ordersTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_orders",
		Help: "Number of orders in the local history",
	})

	for _, collector := range []prometheus.Collector{requestCounter, requestLatency, cartItems, wishlistItems, ordersTotal} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	h := &StorefrontHandler{
		app:            c,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		cartItems:      cartItems,
		wishlistItems:  wishlistItems,
		ordersTotal:    ordersTotal,
	}
	h.watchStores()
	return h, nil
}

// watchStores keeps the store gauges in step with every mutation.
func (h *StorefrontHandler) watchStores() {
	h.cartItems.Set(float64(h.app.Cart.GetItemCount()))
	h.wishlistItems.Set(float64(h.app.Wishlist.GetItemCount()))
	h.ordersTotal.Set(float64(len(h.app.Orders.Orders())))

	h.unsubscribe = append(h.unsubscribe,
		h.app.Cart.Subscribe(func(st cart.State) {
			h.cartItems.Set(float64(cart.ItemCount(st.Items)))
		}),
		h.app.Wishlist.Subscribe(func(st wishlist.State) {
			h.wishlistItems.Set(float64(len(st.Items)))
		}),
		h.app.Orders.Subscribe(func(st order.State) {
			h.ordersTotal.Set(float64(len(st.Orders)))
		}),
	)
}

// Close stops following the stores.
func (h *StorefrontHandler) Close() {
	for _, unsubscribe := range h.unsubscribe {
		unsubscribe()
	}
	h.unsubscribe = nil
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *StorefrontHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// RegisterRoutes registers all storefront routes
func (h *StorefrontHandler) RegisterRoutes(router *mux.Router) {
	route := func(path, method string, fn http.HandlerFunc) {
		router.HandleFunc(path, h.metricsMiddleware(path, fn)).Methods(method)
	}

	// Cart
	route("/cart", "GET", h.GetCart)
	route("/cart", "DELETE", h.ClearCart)
	route("/cart/items", "POST", h.AddCartItem)
	route("/cart/items/{lineId}", "PATCH", h.UpdateCartItem)
	route("/cart/items/{lineId}", "DELETE", h.RemoveCartItem)

	// Wishlist
	route("/wishlist", "GET", h.GetWishlist)
	route("/wishlist", "DELETE", h.ClearWishlist)
	route("/wishlist/{productId}", "POST", h.AddToWishlist)
	route("/wishlist/{productId}/toggle", "POST", h.ToggleWishlist)
	route("/wishlist/{productId}/move-to-cart", "POST", h.MoveToCart)

	// Session
	route("/session", "GET", h.GetSession)
	route("/session", "POST", h.SignIn)
	route("/session", "DELETE", h.SignOut)

	// Address book
	route("/addresses", "GET", h.ListAddresses)
	route("/addresses", "POST", h.AddAddress)
	route("/addresses/{id}", "PATCH", h.UpdateAddress)
	route("/addresses/{id}", "DELETE", h.RemoveAddress)
	route("/addresses/{id}/default", "POST", h.SetDefaultAddress)

	// Orders
	route("/orders", "GET", h.ListOrders)
	route("/orders", "POST", h.PlaceOrder)
	route("/orders/{id}", "GET", h.GetOrder)
	route("/orders/{id}/status", "PATCH", h.UpdateOrderStatus)
	route("/orders/{id}/cancel", "POST", h.CancelOrder)
}

// RegisterHealthCheck registers health check endpoint. check probes the
// persistence backend; nil means always healthy.
func (h *StorefrontHandler) RegisterHealthCheck(router *mux.Router, check func(context.Context) error) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				h.respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "State backend unavailable",
				})
				return
			}
		}

		h.respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Storefront state is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func (h *StorefrontHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func (h *StorefrontHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, Response{Success: false, Error: message})
}

// respondData sends a successful response carrying data
func (h *StorefrontHandler) respondData(w http.ResponseWriter, status int, data interface{}) {
	h.respondJSON(w, status, Response{Success: true, Data: data})
}

func decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// currentUserID is the signed-in user's id, or zero.
func (h *StorefrontHandler) currentUserID() int {
	if u, ok := h.app.Auth.User(); ok {
		return u.ID
	}
	return 0
}
