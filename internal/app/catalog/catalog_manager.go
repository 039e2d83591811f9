package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/manqiyou/manqiyou/internal"
	"github.com/manqiyou/manqiyou/internal/domain"
)

const (
	DefaultFeaturedLimit = 4
	MaxFeaturedLimit     = 50
)

// Manager serves the route and category catalog.
type Manager struct {
	routes     RouteDatabaseRepo
	categories CategoryDatabaseRepo
}

func NewCatalogManager(routes RouteDatabaseRepo, categories CategoryDatabaseRepo) (*Manager, error) {
	if routes == nil || categories == nil {
		return nil, errors.New("missing catalog repository")
	}

	return &Manager{
		routes:     routes,
		categories: categories,
	}, nil
}

// GetFeaturedRoutes returns the featured routes for the start page. The limit is clamped to [1, MaxFeaturedLimit].
func (m Manager) GetFeaturedRoutes(ctx context.Context, limit int) ([]domain.Route, error) {
	limit = internal.ClampInt(limit, 1, MaxFeaturedLimit)

	routes, err := m.routes.GetFeaturedRoutes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to load featured routes: %w", err)
	}

	return routes, nil
}

func (m Manager) FindRoutes(ctx context.Context, filter domain.RouteFilter, page domain.PageRequest) (
	domain.PageResult[domain.Route],
	error,
) {
	if err := page.Validate(); err != nil {
		return domain.PageResult[domain.Route]{}, err
	}

	routes, total, err := m.routes.FindRoutes(ctx, filter, page)
	if err != nil {
		return domain.PageResult[domain.Route]{}, fmt.Errorf("unable to load routes: %w", err)
	}

	return domain.NewPageResult(routes, total, page), nil
}

// GetRoute returns an active route. Inactive routes are only visible to administrators.
func (m Manager) GetRoute(ctx context.Context, id domain.RouteIdentifier) (*domain.Route, error) {
	route, err := m.routes.GetRoute(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("route not found")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load route %d: %w", id, err)
	}

	if !route.IsActive() && !domain.GetUserInfo(ctx).IsAdmin {
		return nil, domain.NotFound("route not found")
	}

	return route, nil
}

func (m Manager) CreateRoute(ctx context.Context, route *domain.Route) (*domain.Route, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	if err := m.checkCategory(ctx, route.CategoryId); err != nil {
		return nil, err
	}

	if err := m.routes.CreateRoute(ctx, route); err != nil {
		return nil, fmt.Errorf("creation failure: %w", err)
	}

	return route, nil
}

func (m Manager) UpdateRoute(ctx context.Context, id domain.RouteIdentifier, route *domain.Route) (
	*domain.Route,
	error,
) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	if err := m.checkCategory(ctx, route.CategoryId); err != nil {
		return nil, err
	}

	var updated *domain.Route
	err := m.routes.SaveRoute(ctx, id, func(rt *domain.Route) (*domain.Route, error) {
		route.Id = id
		route.CreatedAt = rt.CreatedAt
		updated = route
		return route, nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("route not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update failure: %w", err)
	}

	return updated, nil
}

func (m Manager) DeleteRoute(ctx context.Context, id domain.RouteIdentifier) error {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return err
	}

	err := m.routes.DeleteRoute(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("route not found")
	}
	if err != nil {
		return fmt.Errorf("deletion failure: %w", err)
	}

	return nil
}

func (m Manager) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := m.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load categories: %w", err)
	}

	return categories, nil
}

func (m Manager) GetCategory(ctx context.Context, id domain.CategoryIdentifier) (*domain.Category, error) {
	category, err := m.categories.GetCategory(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load category %d: %w", id, err)
	}

	return category, nil
}

func (m Manager) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	if err := m.categories.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("creation failure: %w", err)
	}

	return category, nil
}

func (m Manager) checkCategory(ctx context.Context, id domain.CategoryIdentifier) error {
	if id == 0 {
		return nil
	}

	_, err := m.categories.GetCategory(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.IllegalArgument("category %d does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("unable to load category %d: %w", id, err)
	}

	return nil
}
