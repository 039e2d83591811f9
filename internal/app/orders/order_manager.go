package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/manqiyou/manqiyou/internal/app"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// Booking is the user input of a new order.
type Booking struct {
	RouteId       domain.RouteIdentifier
	ScheduleId    string
	Participants  int
	ContactName   string
	ContactPhone  string
	PaymentMethod string
	Remark        string
}

type Manager struct {
	bus EventBus

	orders OrderDatabaseRepo
	routes RouteDatabaseRepo
}

func NewOrderManager(bus EventBus, orders OrderDatabaseRepo, routes RouteDatabaseRepo) (*Manager, error) {
	if orders == nil || routes == nil {
		return nil, errors.New("missing order repository")
	}

	return &Manager{
		bus: bus,

		orders: orders,
		routes: routes,
	}, nil
}

// CreateOrder books the given route for the current user. The total price is computed from the route price.
func (m Manager) CreateOrder(ctx context.Context, booking Booking) (*domain.Order, error) {
	if err := domain.ValidateUserAccessRights(ctx); err != nil {
		return nil, err
	}
	if booking.Participants < 1 {
		return nil, domain.IllegalArgument("participants must be at least 1, got %d", booking.Participants)
	}

	route, err := m.routes.GetRoute(ctx, booking.RouteId)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("route not found")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load route %d: %w", booking.RouteId, err)
	}
	if !route.IsActive() {
		return nil, domain.NotFound("route not found")
	}
	if !route.CanHost(booking.Participants) {
		return nil, domain.BadRequest(fmt.Sprintf("at most %d participants allowed", route.MaxParticipants))
	}

	userId := domain.GetUserInfo(ctx).Id
	id := domain.OrderIdentifier(uuid.NewString())

	var created *domain.Order
	err = m.orders.SaveOrder(ctx, id, func(o *domain.Order) (*domain.Order, error) {
		o.UserId = userId
		o.RouteId = route.Id
		o.ScheduleId = booking.ScheduleId
		o.Participants = booking.Participants
		o.TotalPrice = domain.CalculateTotal(route.Price, booking.Participants)
		o.Status = domain.OrderStatusPending
		o.PaymentMethod = booking.PaymentMethod
		o.ContactName = booking.ContactName
		o.ContactPhone = booking.ContactPhone
		o.Remark = booking.Remark
		created = o
		return o, nil
	})
	if err != nil {
		return nil, fmt.Errorf("creation failure: %w", err)
	}

	if m.bus != nil {
		m.bus.Publish(app.TopicOrderCreated, *created)
	}

	return created, nil
}

// GetOrders returns the orders of the current user, newest first. An empty status matches all orders.
func (m Manager) GetOrders(ctx context.Context, status domain.OrderStatus, page domain.PageRequest) (
	domain.PageResult[domain.Order],
	error,
) {
	if err := domain.ValidateUserAccessRights(ctx); err != nil {
		return domain.PageResult[domain.Order]{}, err
	}
	if status != "" && !status.Valid() {
		return domain.PageResult[domain.Order]{}, domain.IllegalArgument("unknown order status %q", status)
	}
	if err := page.Validate(); err != nil {
		return domain.PageResult[domain.Order]{}, err
	}

	filter := domain.OrderFilter{UserId: domain.GetUserInfo(ctx).Id, Status: status}
	orders, total, err := m.orders.FindOrders(ctx, filter, page)
	if err != nil {
		return domain.PageResult[domain.Order]{}, fmt.Errorf("unable to load orders: %w", err)
	}

	return domain.NewPageResult(orders, total, page), nil
}

// GetOrder returns an order of the current user. Orders of other users are reported as missing.
func (m Manager) GetOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error) {
	if err := domain.ValidateUserAccessRights(ctx); err != nil {
		return nil, err
	}

	order, err := m.orders.GetOrder(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load order %s: %w", id, err)
	}

	sessionUser := domain.GetUserInfo(ctx)
	if order.UserId != sessionUser.Id && !sessionUser.IsAdmin {
		return nil, domain.NotFound("order not found")
	}

	return order, nil
}

// CancelOrder cancels a pending or paid order of the current user.
func (m Manager) CancelOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error) {
	if _, err := m.GetOrder(ctx, id); err != nil {
		return nil, err
	}

	var cancelled *domain.Order
	err := m.orders.SaveOrder(ctx, id, func(o *domain.Order) (*domain.Order, error) {
		if !o.CanCancel() {
			return nil, domain.BadRequest(fmt.Sprintf("order in status %s can not be cancelled", o.Status))
		}
		o.Status = domain.OrderStatusCancelled
		cancelled = o
		return o, nil
	})
	if err != nil {
		return nil, fmt.Errorf("cancellation failure: %w", err)
	}

	if m.bus != nil {
		m.bus.Publish(app.TopicOrderCancelled, *cancelled)
	}

	return cancelled, nil
}
