package features

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/tair/storefront-state/internal/app"
	"github.com/tair/storefront-state/internal/auth"
	"github.com/tair/storefront-state/internal/catalog"
	"github.com/tair/storefront-state/internal/order"
	"github.com/tair/storefront-state/internal/pricing"
	"github.com/tair/storefront-state/internal/storefront/usecase/command"
	"github.com/tair/storefront-state/pkg/persist"
)

type storefrontTestContext struct {
	repo     *persist.MemoryRepository
	app      *app.Container
	products map[int]catalog.Product
	message  string
	err      error
}

func (c *storefrontTestContext) reset() error {
	c.repo = persist.NewMemoryRepository()
	c.products = map[int]catalog.Product{}
	c.message = ""
	c.err = nil
	return c.boot()
}

func (c *storefrontTestContext) boot() error {
	container, err := app.InitializeContainer(c.repo, pricing.DefaultPolicy(), command.NoopPublisher{})
	if err != nil {
		return err
	}
	if err := container.Hydrate(context.Background()); err != nil {
		return err
	}
	c.app = container
	return nil
}

func (c *storefrontTestContext) aProductPricedWithSizes(id int, title string, price float64, sizes string) error {
	p := catalog.Product{ID: id, Title: title, Price: price}
	for _, name := range strings.Split(sizes, ",") {
		p.Sizes = append(p.Sizes, catalog.Size{Name: strings.TrimSpace(name), InStock: true})
	}
	c.products[id] = p
	return nil
}

func (c *storefrontTestContext) product(id int) (catalog.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return catalog.Product{}, fmt.Errorf("product %d not defined", id)
	}
	return p, nil
}

func (c *storefrontTestContext) iAddOfProductInSize(quantity, id int, size string) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	res, err := c.app.Commands.AddToCart.Handle(context.Background(), command.AddToCartCommand{
		Product:  p,
		Size:     size,
		Quantity: quantity,
	})
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("add to cart failed: %s", res.Message)
	}
	return nil
}

func (c *storefrontTestContext) iAddProductToTheCartWithoutASize(id int) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	res, err := c.app.Commands.AddToCart.Handle(context.Background(), command.AddToCartCommand{Product: p, Quantity: 1})
	c.message = res.Message
	return err
}

func (c *storefrontTestContext) iSetTheQuantityOfLineTo(lineID string, quantity int) error {
	c.err = c.app.Cart.UpdateQuantity(context.Background(), lineID, quantity)
	return nil
}

func (c *storefrontTestContext) theStorefrontRestarts() error {
	return c.boot()
}

func (c *storefrontTestContext) theCartHasLines(n int) error {
	if got := len(c.app.Cart.Items()); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) lineHasQuantity(lineID string, quantity int) error {
	item, ok := c.app.Cart.Item(lineID)
	if !ok {
		return fmt.Errorf("line %s not in cart", lineID)
	}
	if item.Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, item.Quantity)
	}
	return nil
}

func (c *storefrontTestContext) theCartItemCountIs(n int) error {
	if got := c.app.Cart.GetItemCount(); got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) theCartAmountIs(field string, want float64) error {
	summary := c.app.Queries.CartSummary.Handle()
	amounts := map[string]float64{
		"subtotal": summary.Subtotal,
		"shipping": summary.Shipping,
		"tax":      summary.Tax,
		"total":    summary.Total,
	}
	return equalAmount("cart "+field, amounts[field], want)
}

func (c *storefrontTestContext) theLastOperationFailed() error {
	if c.err == nil {
		return fmt.Errorf("expected the last operation to fail")
	}
	return nil
}

func (c *storefrontTestContext) theMessageIs(msg string) error {
	if c.message != msg {
		return fmt.Errorf("expected message %q, got %q", msg, c.message)
	}
	return nil
}

func (c *storefrontTestContext) productIsNotInTheWishlist(id int) error {
	if c.app.Wishlist.IsInWishlist(id) {
		return fmt.Errorf("product %d is in the wishlist", id)
	}
	return nil
}

func (c *storefrontTestContext) productIsInTheWishlist(id int) error {
	if !c.app.Wishlist.IsInWishlist(id) {
		return fmt.Errorf("product %d is not in the wishlist", id)
	}
	return nil
}

func (c *storefrontTestContext) iToggleProductInTheWishlist(id int) error {
	res, err := c.app.Commands.ToggleWishlist.Handle(context.Background(), command.ToggleWishlistCommand{ProductID: id})
	c.message = res.Message
	return err
}

func (c *storefrontTestContext) iSaveProductToTheWishlist(id int) error {
	res, err := c.app.Commands.AddToWishlist.Handle(context.Background(), command.AddToWishlistCommand{ProductID: id})
	c.message = res.Message
	return err
}

func (c *storefrontTestContext) theWishlistHasItems(n int) error {
	if got := c.app.Wishlist.GetItemCount(); got != n {
		return fmt.Errorf("expected %d wishlist items, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) iAddAddressWithDefault(id, isDefault string) error {
	return c.app.Auth.AddAddress(context.Background(), auth.Address{
		ID:        id,
		Street:    "1 Main St",
		City:      "Springfield",
		IsDefault: isDefault == "true",
	})
}

func (c *storefrontTestContext) iRemoveAddress(id string) error {
	return c.app.Auth.RemoveAddress(context.Background(), id)
}

func (c *storefrontTestContext) iMakeAddressTheDefault(id string) error {
	return c.app.Auth.SetDefaultAddress(context.Background(), id)
}

func (c *storefrontTestContext) theDefaultAddressIs(id string) error {
	def, ok := c.app.Auth.GetDefaultAddress()
	if !ok {
		return fmt.Errorf("no default address")
	}
	if def.ID != id {
		return fmt.Errorf("expected default %q, got %q", id, def.ID)
	}
	return nil
}

func (c *storefrontTestContext) exactlyOneAddressIsDefault() error {
	count := 0
	for _, a := range c.app.Auth.Addresses() {
		if a.IsDefault {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("expected one default address, got %d", count)
	}
	return nil
}

func (c *storefrontTestContext) iAmSignedInAsUser(id int) error {
	ctx := context.Background()
	if err := c.app.Auth.SetUser(ctx, &auth.User{ID: id, Username: fmt.Sprintf("user%d", id)}); err != nil {
		return err
	}
	return c.app.Auth.SetToken(ctx, "session-token")
}

func (c *storefrontTestContext) iPlaceAnOrder() error {
	res, err := c.app.Commands.PlaceOrder.Handle(context.Background(), command.PlaceOrderCommand{})
	c.message = res.Message
	return err
}

func (c *storefrontTestContext) latestOrder() (order.Order, error) {
	history, err := c.app.Queries.OrderHistory.Handle()
	if err != nil {
		return order.Order{}, err
	}
	if len(history) == 0 {
		return order.Order{}, fmt.Errorf("no orders")
	}
	return history[0], nil
}

func (c *storefrontTestContext) myLatestOrderHasStatusAndTotal(status string, total float64) error {
	o, err := c.latestOrder()
	if err != nil {
		return err
	}
	if string(o.Status) != status {
		return fmt.Errorf("expected status %s, got %s", status, o.Status)
	}
	return equalAmount("order total", o.Total, total)
}

func (c *storefrontTestContext) iHaveOrders(n int) error {
	history, err := c.app.Queries.OrderHistory.Handle()
	if err != nil {
		return err
	}
	if len(history) != n {
		return fmt.Errorf("expected %d orders, got %d", n, len(history))
	}
	return nil
}

func (c *storefrontTestContext) iMoveMyLatestOrderTo(status string) error {
	o, err := c.latestOrder()
	if err != nil {
		return err
	}
	_, c.err = c.app.Commands.UpdateOrderStatus.Handle(context.Background(), command.UpdateOrderStatusCommand{
		OrderID: o.ID,
		Status:  order.Status(status),
	})
	return nil
}

func equalAmount(what string, got, want float64) error {
	if math.Abs(got-want) > 0.005 {
		return fmt.Errorf("expected %s %.2f, got %.2f", what, want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storefrontTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})

	// Given steps
	ctx.Step(`^a product (\d+) "([^"]*)" priced (\d+\.\d+) with sizes "([^"]*)"$`, tc.aProductPricedWithSizes)
	ctx.Step(`^I am signed in as user (\d+)$`, tc.iAmSignedInAsUser)
	ctx.Step(`^product (\d+) is not in the wishlist$`, tc.productIsNotInTheWishlist)

	// When steps
	ctx.Step(`^I add (\d+) of product (\d+) in size "([^"]*)"$`, tc.iAddOfProductInSize)
	ctx.Step(`^I add product (\d+) to the cart without a size$`, tc.iAddProductToTheCartWithoutASize)
	ctx.Step(`^I set the quantity of line "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfLineTo)
	ctx.Step(`^the storefront restarts$`, tc.theStorefrontRestarts)
	ctx.Step(`^I toggle product (\d+) in the wishlist$`, tc.iToggleProductInTheWishlist)
	ctx.Step(`^I save product (\d+) to the wishlist$`, tc.iSaveProductToTheWishlist)
	ctx.Step(`^I add address "([^"]*)" with default (true|false)$`, tc.iAddAddressWithDefault)
	ctx.Step(`^I remove address "([^"]*)"$`, tc.iRemoveAddress)
	ctx.Step(`^I make address "([^"]*)" the default$`, tc.iMakeAddressTheDefault)
	ctx.Step(`^I place an order$`, tc.iPlaceAnOrder)
	ctx.Step(`^I move my latest order to "([^"]*)"$`, tc.iMoveMyLatestOrderTo)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^line "([^"]*)" has quantity (\d+)$`, tc.lineHasQuantity)
	ctx.Step(`^the cart item count is (\d+)$`, tc.theCartItemCountIs)
	ctx.Step(`^the cart (subtotal|shipping|tax|total) is (\d+\.\d+)$`, tc.theCartAmountIs)
	ctx.Step(`^the last operation failed$`, tc.theLastOperationFailed)
	ctx.Step(`^the message is "([^"]*)"$`, tc.theMessageIs)
	ctx.Step(`^product (\d+) is in the wishlist$`, tc.productIsInTheWishlist)
	ctx.Step(`^the wishlist has (\d+) items?$`, tc.theWishlistHasItems)
	ctx.Step(`^the default address is "([^"]*)"$`, tc.theDefaultAddressIs)
	ctx.Step(`^exactly one address is default$`, tc.exactlyOneAddressIsDefault)
	ctx.Step(`^my latest order has status "([^"]*)" and total (\d+\.\d+)$`, tc.myLatestOrderHasStatusAndTotal)
	ctx.Step(`^I have (\d+) orders?$`, tc.iHaveOrders)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
