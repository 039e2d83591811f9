package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/manqiyou/manqiyou/internal/app/api/core/envelope"
	"github.com/manqiyou/manqiyou/internal/app/api/core/request"
	"github.com/manqiyou/manqiyou/internal/app/api/core/respond"
	"github.com/manqiyou/manqiyou/internal/app/api/core/translator"
	"github.com/manqiyou/manqiyou/internal/app/api/v1/models"
	"github.com/manqiyou/manqiyou/internal/app/catalog"
	"github.com/manqiyou/manqiyou/internal/domain"
)

type CatalogService interface {
	GetFeaturedRoutes(ctx context.Context, limit int) ([]domain.Route, error)
	FindRoutes(ctx context.Context, filter domain.RouteFilter, page domain.PageRequest) (
		domain.PageResult[domain.Route],
		error,
	)
	GetRoute(ctx context.Context, id domain.RouteIdentifier) (*domain.Route, error)
	CreateRoute(ctx context.Context, route *domain.Route) (*domain.Route, error)
	UpdateRoute(ctx context.Context, id domain.RouteIdentifier, route *domain.Route) (*domain.Route, error)
	DeleteRoute(ctx context.Context, id domain.RouteIdentifier) error

	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id domain.CategoryIdentifier) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type CatalogEndpoint struct {
	tr            *translator.Translator
	authenticator Authenticator
	validator     Validator
	catalog       CatalogService
}

func NewCatalogEndpoint(
	tr *translator.Translator,
	authenticator Authenticator,
	validator Validator,
	catalog CatalogService,
) CatalogEndpoint {
	return CatalogEndpoint{
		tr:            tr,
		authenticator: authenticator,
		validator:     validator,
		catalog:       catalog,
	}
}

func (e CatalogEndpoint) GetName() string {
	return "CatalogEndpoint"
}

func (e CatalogEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("GET /routes/featured", e.handleFeaturedGet())
	g.HandleFunc("GET /routes", e.handleRoutesGet())
	g.HandleFunc("GET /routes/{id}", e.handleRouteGet())
	g.HandleFunc("GET /categories", e.handleCategoriesGet())
	g.HandleFunc("GET /categories/{id}", e.handleCategoryGet())

	adminGroup := g.With(e.authenticator.LoggedIn(ScopeAdmin))
	adminGroup.HandleFunc("POST /routes", e.handleRouteCreatePost())
	adminGroup.HandleFunc("PUT /routes/{id}", e.handleRouteUpdatePut())
	adminGroup.HandleFunc("DELETE /routes/{id}", e.handleRouteDelete())
	adminGroup.HandleFunc("POST /categories", e.handleCategoryCreatePost())
}

// handleFeaturedGet returns a handler function.
//
// @ID catalog_handleFeaturedGet
// @Tags Catalog
// @Summary Get the featured routes of the start page.
// @Param limit query int false "The maximum number of routes (1-50)." default(4)
// @Produce json
// @Success 200 {object} envelope.Response[[]domain.Route]
// @Failure 400 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /routes/featured [get]
func (e CatalogEndpoint) handleFeaturedGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		limit, err := request.QueryInt(r, "limit", catalog.DefaultFeaturedLimit)
		if err != nil {
			return nil, err
		}

		routes, err := e.catalog.GetFeaturedRoutes(r.Context(), limit)
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(routes), nil
	})
}

// handleRoutesGet returns a handler function.
//
// @ID catalog_handleRoutesGet
// @Tags Catalog
// @Summary Get a page of active routes.
// @Param page query int false "The page number, starting at 1." default(1)
// @Param size query int false "The page size (1-100)." default(10)
// @Param categoryId query int false "Only routes of this category."
// @Param difficulty query string false "Only routes of this difficulty."
// @Produce json
// @Success 200 {object} envelope.Response[domain.PageResult[domain.Route]]
// @Failure 400 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /routes [get]
func (e CatalogEndpoint) handleRoutesGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		page, err := request.Page(r)
		if err != nil {
			return nil, err
		}
		categoryId, err := request.QueryUint(r, "categoryId")
		if err != nil {
			return nil, err
		}

		filter := domain.RouteFilter{
			CategoryId: domain.CategoryIdentifier(categoryId),
			Difficulty: request.Query(r, "difficulty"),
		}
		result, err := e.catalog.FindRoutes(r.Context(), filter, page)
		if err != nil {
			return nil, err
		}

		respond.TotalCount(w, result.Total)
		return envelope.SuccessData(result), nil
	})
}

// handleRouteGet returns a handler function.
//
// @ID catalog_handleRouteGet
// @Tags Catalog
// @Summary Get a single route.
// @Description Inactive routes are only visible to administrators.
// @Param id path int true "The route identifier."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Route]
// @Failure 400 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /routes/{id} [get]
func (e CatalogEndpoint) handleRouteGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id, err := request.PathUint(r, "id")
		if err != nil {
			return nil, err
		}

		route, err := e.catalog.GetRoute(r.Context(), domain.RouteIdentifier(id))
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(route), nil
	})
}

// handleRouteCreatePost returns a handler function.
//
// @ID catalog_handleRouteCreatePost
// @Tags Catalog
// @Summary Create a new route.
// @Param request body models.RouteRequest true "The route data."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Route]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /routes [post]
// @Security BearerAuth
func (e CatalogEndpoint) handleRouteCreatePost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.RouteRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		route, err := e.catalog.CreateRoute(r.Context(), req.ToDomain())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("route created", route), nil
	})
}

// handleRouteUpdatePut returns a handler function.
//
// @ID catalog_handleRouteUpdatePut
// @Tags Catalog
// @Summary Replace an existing route.
// @Param id path int true "The route identifier."
// @Param request body models.RouteRequest true "The route data."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Route]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /routes/{id} [put]
// @Security BearerAuth
func (e CatalogEndpoint) handleRouteUpdatePut() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id, err := request.PathUint(r, "id")
		if err != nil {
			return nil, err
		}

		var req models.RouteRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		route, err := e.catalog.UpdateRoute(r.Context(), domain.RouteIdentifier(id), req.ToDomain())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("route updated", route), nil
	})
}

// handleRouteDelete returns a handler function.
//
// @ID catalog_handleRouteDelete
// @Tags Catalog
// @Summary Delete a route.
// @Param id path int true "The route identifier."
// @Produce json
// @Success 200 {object} envelope.Response[any]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /routes/{id} [delete]
// @Security BearerAuth
func (e CatalogEndpoint) handleRouteDelete() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id, err := request.PathUint(r, "id")
		if err != nil {
			return nil, err
		}

		if err := e.catalog.DeleteRoute(r.Context(), domain.RouteIdentifier(id)); err != nil {
			return nil, err
		}

		return envelope.Success(), nil
	})
}

// handleCategoriesGet returns a handler function.
//
// @ID catalog_handleCategoriesGet
// @Tags Catalog
// @Summary Get all route categories.
// @Produce json
// @Success 200 {object} envelope.Response[[]domain.Category]
// @Failure 500 {object} envelope.Response[any]
// @Router /categories [get]
func (e CatalogEndpoint) handleCategoriesGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		categories, err := e.catalog.GetCategories(r.Context())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(categories), nil
	})
}

// handleCategoryGet returns a handler function.
//
// @ID catalog_handleCategoryGet
// @Tags Catalog
// @Summary Get a single route category.
// @Param id path int true "The category identifier."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Category]
// @Failure 400 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /categories/{id} [get]
func (e CatalogEndpoint) handleCategoryGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id, err := request.PathUint(r, "id")
		if err != nil {
			return nil, err
		}

		category, err := e.catalog.GetCategory(r.Context(), domain.CategoryIdentifier(id))
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(category), nil
	})
}

// handleCategoryCreatePost returns a handler function.
//
// @ID catalog_handleCategoryCreatePost
// @Tags Catalog
// @Summary Create a new route category.
// @Param request body models.CategoryRequest true "The category data."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Category]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /categories [post]
// @Security BearerAuth
func (e CatalogEndpoint) handleCategoryCreatePost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.CategoryRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		category, err := e.catalog.CreateCategory(r.Context(), req.ToDomain())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("category created", category), nil
	})
}
