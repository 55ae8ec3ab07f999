package http

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	// Registers the API description served under /swagger/
	_ "github.com/tair/storefront-state/docs"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router) {
	router.PathPrefix("/swagger/").Handler(SwaggerHandler())
}

// SwaggerHandler serves the Swagger UI and doc.json
func SwaggerHandler() http.Handler {
	return httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
}

// GetCart godoc
// @Summary Get cart
// @Description Cart lines with subtotal, shipping, tax, total and the amount left to free shipping
// @Tags Cart
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /cart [get]
func (h *StorefrontHandler) GetCartDoc() {}

// ClearCart godoc
// @Summary Clear cart
// @Description Remove every line from the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /cart [delete]
func (h *StorefrontHandler) ClearCartDoc() {}

// AddToCart godoc
// @Summary Add to cart
// @Description Add a product variant; size and color are required when the product declares them
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body object{product=object,size=string,color=string,quantity=int} true "Request body"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /cart/items [post]
func (h *StorefrontHandler) AddToCartDoc() {}

// UpdateLineQuantity godoc
// @Summary Update line quantity
// @Description Set the quantity of a line; zero removes it, negative is rejected
// @Tags Cart
// @Accept json
// @Produce json
// @Param lineId path string true "Line ID"
// @Param request body object{quantity=int} true "Request body"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /cart/items/{lineId} [patch]
func (h *StorefrontHandler) UpdateLineQuantityDoc() {}

// RemoveLine godoc
// @Summary Remove line
// @Description Remove a line from the cart
// @Tags Cart
// @Produce json
// @Param lineId path string true "Line ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /cart/items/{lineId} [delete]
func (h *StorefrontHandler) RemoveLineDoc() {}

// GetWishlist godoc
// @Summary Get wishlist
// @Description Saved products in insertion order
// @Tags Wishlist
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /wishlist [get]
func (h *StorefrontHandler) GetWishlistDoc() {}

// ClearWishlist godoc
// @Summary Clear wishlist
// @Description Remove every saved product
// @Tags Wishlist
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /wishlist [delete]
func (h *StorefrontHandler) ClearWishlistDoc() {}

// SaveProduct godoc
// @Summary Save product
// @Description Save a product; reports when it is already saved
// @Tags Wishlist
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /wishlist/{productId} [post]
func (h *StorefrontHandler) SaveProductDoc() {}

// ToggleProduct godoc
// @Summary Toggle product
// @Description Save the product if absent, remove it if present
// @Tags Wishlist
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /wishlist/{productId}/toggle [post]
func (h *StorefrontHandler) ToggleProductDoc() {}

// MoveToCart godoc
// @Summary Move to cart
// @Description Add one unit of a saved product to the cart and remove it from the wishlist
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body object{product=object,size=string,color=string} true "Request body"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /wishlist/{productId}/move-to-cart [post]
func (h *StorefrontHandler) MoveToCartDoc() {}

// GetSession godoc
// @Summary Get session
// @Description Current user, authentication flag and readable token claims
// @Tags Session
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /session [get]
func (h *StorefrontHandler) GetSessionDoc() {}

// SignIn godoc
// @Summary Sign in
// @Description Store the user and token returned by the account API
// @Tags Session
// @Accept json
// @Produce json
// @Param request body object{user=object,token=string} true "Request body"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /session [post]
func (h *StorefrontHandler) SignInDoc() {}

// SignOut godoc
// @Summary Sign out
// @Description Clear user and token; saved addresses stay
// @Tags Session
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /session [delete]
func (h *StorefrontHandler) SignOutDoc() {}

// ListAddresses godoc
// @Summary List addresses
// @Description Saved shipping addresses
// @Tags Addresses
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /addresses [get]
func (h *StorefrontHandler) ListAddressesDoc() {}

// AddAddress godoc
// @Summary Add address
// @Description Add an address; the first one, or one marked default, becomes the only default
// @Tags Addresses
// @Accept json
// @Produce json
// @Param request body object{id=string,firstName=string,lastName=string,street=string,city=string,state=string,zipCode=string,country=string,phone=string,isDefault=bool} true "Request body"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /addresses [post]
func (h *StorefrontHandler) AddAddressDoc() {}

// UpdateAddress godoc
// @Summary Update address
// @Description Merge the given fields into an address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param request body object{street=string,city=string,isDefault=bool} true "Request body"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /addresses/{id} [patch]
func (h *StorefrontHandler) UpdateAddressDoc() {}

// RemoveAddress godoc
// @Summary Remove address
// @Description Remove an address; the first remaining one takes over as default
// @Tags Addresses
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /addresses/{id} [delete]
func (h *StorefrontHandler) RemoveAddressDoc() {}

// SetDefaultAddress godoc
// @Summary Set default address
// @Description Make the address the only default
// @Tags Addresses
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /addresses/{id}/default [post]
func (h *StorefrontHandler) SetDefaultAddressDoc() {}

// ListOrders godoc
// @Summary List my orders
// @Description Orders of the signed-in user, most recent first
// @Tags Orders
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /orders [get]
func (h *StorefrontHandler) ListOrdersDoc() {}

// PlaceOrder godoc
// @Summary Place order
// @Description Turn the cart into a pending order shipped to the chosen or default address
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body object{addressId=string,paymentMethod=string} true "Request body"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /orders [post]
func (h *StorefrontHandler) PlaceOrderDoc() {}

// GetOrder godoc
// @Summary Get order
// @Description Get one order by ID
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /orders/{id} [get]
func (h *StorefrontHandler) GetOrderDoc() {}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Move an order forward; backward moves and changes to delivered or cancelled orders are rejected
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body object{status=string} true "Request body"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /orders/{id}/status [patch]
func (h *StorefrontHandler) UpdateOrderStatusDoc() {}

// CancelOrder godoc
// @Summary Cancel order
// @Description Cancel an order that is not delivered yet
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /orders/{id}/cancel [post]
func (h *StorefrontHandler) CancelOrderDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and state backend connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *StorefrontHandler) HealthCheckDoc() {}
