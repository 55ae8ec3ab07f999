//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/tair/storefront-state/internal/pricing"
	"github.com/tair/storefront-state/internal/storefront/usecase/command"
	"github.com/tair/storefront-state/internal/storefront/usecase/query"
	"github.com/tair/storefront-state/pkg/persist"
)

// Wire sets
var StoreSet = wire.NewSet(
	ProvideCartStore,
	ProvideWishlistStore,
	ProvideOrderStore,
	ProvideAuthStore,
)

var CommandHandlerSet = wire.NewSet(
	command.NewAddToCartHandler,
	command.NewAddToWishlistHandler,
	command.NewToggleWishlistHandler,
	command.NewMoveToCartHandler,
	command.NewPlaceOrderHandler,
	command.NewUpdateOrderStatusHandler,
	command.NewCancelOrderHandler,
	wire.Struct(new(Commands), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewCartSummaryHandler,
	query.NewOrderHistoryHandler,
	query.NewGetOrderHandler,
	wire.Struct(new(Queries), "*"),
)

var AllSet = wire.NewSet(
	StoreSet,
	CommandHandlerSet,
	QueryHandlerSet,
	NewContainer,
)

// InitializeContainer builds the container over repo
func InitializeContainer(repo persist.Repository, policy pricing.Policy, publisher command.OrderEventPublisher) (*Container, error) {
	wire.Build(AllSet)
	return nil, nil
}
