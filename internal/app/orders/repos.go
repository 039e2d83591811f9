package orders

import (
	"context"

	"github.com/manqiyou/manqiyou/internal/domain"
)

type OrderDatabaseRepo interface {
	GetOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error)
	FindOrders(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) ([]domain.Order, int64, error)
	SaveOrder(ctx context.Context, id domain.OrderIdentifier, updateFunc func(o *domain.Order) (*domain.Order, error)) error
}

type RouteDatabaseRepo interface {
	GetRoute(ctx context.Context, id domain.RouteIdentifier) (*domain.Route, error)
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
}
