package handlers

import (
	"net/http"
	"time"

	"github.com/go-pkgz/routegroup"

	"github.com/manqiyou/manqiyou/internal"
	"github.com/manqiyou/manqiyou/internal/app/api/core/envelope"
	"github.com/manqiyou/manqiyou/internal/app/api/core/translator"
	"github.com/manqiyou/manqiyou/internal/app/api/v1/models"
)

const serviceName = "manqiyou-app"

var publicEndpoints = []string{
	"GET /api/v1/health - health check",
	"GET /api/v1/routes - route list",
	"GET /api/v1/routes/featured - featured routes",
	"GET /api/v1/routes/{id} - route details",
	"GET /api/v1/categories - category list",
	"GET /api/v1/content - cms content",
	"POST /api/v1/auth/send-code - send verification code",
	"POST /api/v1/auth/login - login",
	"POST /api/v1/orders - book a route",
}

type HealthEndpoint struct {
	tr  *translator.Translator
	now func() time.Time
}

func NewHealthEndpoint(tr *translator.Translator) HealthEndpoint {
	return HealthEndpoint{
		tr:  tr,
		now: time.Now,
	}
}

func (e HealthEndpoint) GetName() string {
	return "HealthEndpoint"
}

func (e HealthEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("GET /health", e.handleHealthGet())
	g.HandleFunc("GET /info", e.handleInfoGet())
}

// handleHealthGet returns a handler function.
//
// @ID health_handleHealthGet
// @Tags Health
// @Summary Check if the service is alive.
// @Produce json
// @Success 200 {object} envelope.Response[models.Health]
// @Router /health [get]
func (e HealthEndpoint) handleHealthGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		return envelope.SuccessData(models.Health{
			Status:    "UP",
			Service:   serviceName,
			Version:   internal.Version,
			Timestamp: e.now().UnixMilli(),
		}), nil
	})
}

// handleInfoGet returns a handler function.
//
// @ID health_handleInfoGet
// @Tags Health
// @Summary Get general information about the API.
// @Produce json
// @Success 200 {object} envelope.Response[models.Info]
// @Router /info [get]
func (e HealthEndpoint) handleInfoGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		return envelope.SuccessData(models.Info{
			Name:        "Manqiyou backend",
			Description: "Backend API of the Manqiyou bicycle-touring website",
			Version:     internal.Version,
			Endpoints:   publicEndpoints,
		}), nil
	})
}
