package adapters

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manqiyou/manqiyou/internal/config"
	"github.com/manqiyou/manqiyou/internal/domain"
)

type MetricsServer struct {
	*http.Server
	registry *prometheus.Registry

	apiResponses  *prometheus.CounterVec
	ordersCreated prometheus.Counter
	logins        *prometheus.CounterVec
	registrations prometheus.Counter
}

// NewMetricsServer returns a new prometheus server
func NewMetricsServer(cfg *config.Config) *MetricsServer {
	reg := prometheus.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &MetricsServer{
		Server: &http.Server{
			Addr:              cfg.Statistics.ListeningAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		registry: reg,

		apiResponses: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "manqiyou_api_responses_total",
				Help: "Error responses produced by the API, by error class and envelope code.",
			}, []string{"class", "code"},
		),
		ordersCreated: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "manqiyou_orders_created_total",
				Help: "Orders created since startup.",
			},
		),
		logins: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "manqiyou_logins_total",
				Help: "Successful logins, by login method.",
			}, []string{"method"},
		),
		registrations: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "manqiyou_users_registered_total",
				Help: "Users created on their first login.",
			},
		),
	}
}

// Run starts the metrics server
func (m *MetricsServer) Run(ctx context.Context) {
	// Run the metrics server in a goroutine
	go func() {
		if err := m.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics service exited", "address", m.Addr, "error", err)
		}
	}()

	slog.Info("started metrics service", "address", m.Addr)

	// Wait for the context to be done
	<-ctx.Done()

	// Create a context with timeout for the shutdown process
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt to gracefully shutdown the metrics server
	if err := m.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics service shutdown failed", "address", m.Addr, "error", err)
	} else {
		slog.Info("metrics service shutdown gracefully", "address", m.Addr)
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsServer) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveResponse counts one API response of the given class and envelope code.
func (m *MetricsServer) ObserveResponse(class string, code int) {
	m.apiResponses.WithLabelValues(class, strconv.Itoa(code)).Inc()
}

// IncOrdersCreated counts one created order.
func (m *MetricsServer) IncOrdersCreated() {
	m.ordersCreated.Inc()
}

// IncLogins counts one successful login of the given method.
func (m *MetricsServer) IncLogins(method domain.LoginMethod) {
	m.logins.WithLabelValues(string(method)).Inc()
}

// IncRegistrations counts one newly created user.
func (m *MetricsServer) IncRegistrations() {
	m.registrations.Inc()
}
