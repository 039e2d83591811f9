package audit

import (
	"fmt"
	"log/slog"

	"github.com/manqiyou/manqiyou/internal/app"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// Recorder writes an audit log line for every business event on the message bus
// and forwards the countable ones to the metrics recorder.
type Recorder struct {
	bus     EventBus
	logger  *slog.Logger
	metrics MetricsRecorder
}

// NewAuditRecorder subscribes the recorder to the message bus. The metrics recorder is optional.
func NewAuditRecorder(bus EventBus, logger *slog.Logger, metrics MetricsRecorder) (*Recorder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		bus:     bus,
		logger:  logger,
		metrics: metrics,
	}

	err := r.connectToMessageBus()
	if err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return r, nil
}

func (r *Recorder) connectToMessageBus() error {
	subscriptions := []struct {
		topic string
		fn    any
	}{
		{app.TopicAuthLogin, r.handleAuthLoginEvent},
		{app.TopicUserRegistered, r.handleUserRegisteredEvent},
		{app.TopicOrderCreated, r.handleOrderCreatedEvent},
		{app.TopicOrderCancelled, r.handleOrderCancelledEvent},
		{app.TopicPointsChanged, r.handlePointsChangedEvent},
	}

	for _, s := range subscriptions {
		if err := r.bus.Subscribe(s.topic, s.fn); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", s.topic, err)
		}
	}

	return nil
}

func (r *Recorder) handleAuthLoginEvent(event domain.LoginEvent) {
	r.logger.Info("user logged in", "user", event.UserId, "method", event.Method)
	if r.metrics != nil {
		r.metrics.IncLogins(event.Method)
	}
}

func (r *Recorder) handleUserRegisteredEvent(user domain.User) {
	r.logger.Info("user registered", "user", user.Id)
	if r.metrics != nil {
		r.metrics.IncRegistrations()
	}
}

func (r *Recorder) handleOrderCreatedEvent(order domain.Order) {
	r.logger.Info("order created",
		"order", order.OrderNo, "user", order.UserId, "route", order.RouteId, "total", order.TotalPrice)
	if r.metrics != nil {
		r.metrics.IncOrdersCreated()
	}
}

func (r *Recorder) handleOrderCancelledEvent(order domain.Order) {
	r.logger.Info("order cancelled", "order", order.OrderNo, "user", order.UserId)
}

func (r *Recorder) handlePointsChangedEvent(record domain.PointsRecord) {
	r.logger.Info("points changed",
		"user", record.UserId, "type", record.Type, "amount", record.Amount, "source", record.Source)
}
