package catalog

import (
	"context"

	"github.com/manqiyou/manqiyou/internal/domain"
)

type RouteDatabaseRepo interface {
	GetFeaturedRoutes(ctx context.Context, limit int) ([]domain.Route, error)
	FindRoutes(ctx context.Context, filter domain.RouteFilter, page domain.PageRequest) ([]domain.Route, int64, error)
	GetRoute(ctx context.Context, id domain.RouteIdentifier) (*domain.Route, error)
	CreateRoute(ctx context.Context, route *domain.Route) error
	SaveRoute(
		ctx context.Context,
		id domain.RouteIdentifier,
		updateFunc func(rt *domain.Route) (*domain.Route, error),
	) error
	DeleteRoute(ctx context.Context, id domain.RouteIdentifier) error
}

type CategoryDatabaseRepo interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id domain.CategoryIdentifier) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
}
