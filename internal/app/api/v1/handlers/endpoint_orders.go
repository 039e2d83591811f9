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
	"github.com/manqiyou/manqiyou/internal/app/orders"
	"github.com/manqiyou/manqiyou/internal/domain"
)

type OrderService interface {
	CreateOrder(ctx context.Context, booking orders.Booking) (*domain.Order, error)
	GetOrders(ctx context.Context, status domain.OrderStatus, page domain.PageRequest) (
		domain.PageResult[domain.Order],
		error,
	)
	GetOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error)
	CancelOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error)
}

type OrderEndpoint struct {
	tr            *translator.Translator
	authenticator Authenticator
	validator     Validator
	orders        OrderService
}

func NewOrderEndpoint(
	tr *translator.Translator,
	authenticator Authenticator,
	validator Validator,
	orderService OrderService,
) OrderEndpoint {
	return OrderEndpoint{
		tr:            tr,
		authenticator: authenticator,
		validator:     validator,
		orders:        orderService,
	}
}

func (e OrderEndpoint) GetName() string {
	return "OrderEndpoint"
}

func (e OrderEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.With(e.authenticator.LoggedIn(ScopeUser))

	apiGroup.HandleFunc("POST /orders", e.handleCreatePost())
	apiGroup.HandleFunc("GET /orders", e.handleAllGet())
	apiGroup.HandleFunc("GET /orders/{id}", e.handleByIdGet())
	apiGroup.HandleFunc("POST /orders/{id}/cancel", e.handleCancelPost())
}

// handleCreatePost returns a handler function.
//
// @ID orders_handleCreatePost
// @Tags Orders
// @Summary Book a route for the current user.
// @Description The total price is the route price times the number of participants.
// @Param request body models.OrderRequest true "The booking."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Order]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /orders [post]
// @Security BearerAuth
func (e OrderEndpoint) handleCreatePost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.OrderRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		order, err := e.orders.CreateOrder(r.Context(), req.ToBooking())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("order created", order), nil
	})
}

// handleAllGet returns a handler function.
//
// @ID orders_handleAllGet
// @Tags Orders
// @Summary Get the orders of the current user, newest first.
// @Param status query string false "Only orders in this status."
// @Param page query int false "The page number, starting at 1." default(1)
// @Param size query int false "The page size (1-100)." default(10)
// @Produce json
// @Success 200 {object} envelope.Response[domain.PageResult[domain.Order]]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /orders [get]
// @Security BearerAuth
func (e OrderEndpoint) handleAllGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		page, err := request.Page(r)
		if err != nil {
			return nil, err
		}

		status := domain.OrderStatus(request.Query(r, "status"))
		result, err := e.orders.GetOrders(r.Context(), status, page)
		if err != nil {
			return nil, err
		}

		respond.TotalCount(w, result.Total)
		return envelope.SuccessData(result), nil
	})
}

// handleByIdGet returns a handler function.
//
// @ID orders_handleByIdGet
// @Tags Orders
// @Summary Get a single order of the current user.
// @Param id path string true "The order identifier."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Order]
// @Failure 401 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /orders/{id} [get]
// @Security BearerAuth
func (e OrderEndpoint) handleByIdGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id := request.Path(r, "id")

		order, err := e.orders.GetOrder(r.Context(), domain.OrderIdentifier(id))
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(order), nil
	})
}

// handleCancelPost returns a handler function.
//
// @ID orders_handleCancelPost
// @Tags Orders
// @Summary Cancel a pending or paid order of the current user.
// @Param id path string true "The order identifier."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Order]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /orders/{id}/cancel [post]
// @Security BearerAuth
func (e OrderEndpoint) handleCancelPost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id := request.Path(r, "id")

		order, err := e.orders.CancelOrder(r.Context(), domain.OrderIdentifier(id))
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("order cancelled", order), nil
	})
}
