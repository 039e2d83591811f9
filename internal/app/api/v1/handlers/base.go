package handlers

import (
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/manqiyou/manqiyou/internal/app/api/core"
)

type Handler interface {
	// GetName returns the name of the handler.
	GetName() string
	// RegisterRoutes registers the routes for the handler.
	RegisterRoutes(g *routegroup.Bundle)
}

// @title Manqiyou Public API
// @version 1.0
// @description The Manqiyou REST API serves the route catalog, cms content, member accounts and bookings
// @description of the bicycle-touring site. Every response is wrapped in an envelope of code, message, data
// @description and timestamp.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /api/v1
// @query.collection.format multi

// NewRestApi returns the setup function of the v1 API. The authenticator adds the user information of a
// valid bearer token to every request, endpoints that require a login check it on their own.
func NewRestApi(authenticator Authenticator, handlers ...Handler) core.ApiEndpointSetupFunc {
	return func() (core.ApiVersion, core.GroupSetupFn) {
		return "v1", func(group *routegroup.Bundle) {
			group.Use(authenticator.InfoOnly())

			// Handler functions
			for _, h := range handlers {
				h.RegisterRoutes(group)
			}
		}
	}
}

// region handler-interfaces

type Authenticator interface {
	// LoggedIn checks if a user is logged in. If scopes are given, they are validated as well.
	LoggedIn(scopes ...Scope) func(next http.Handler) http.Handler
	// InfoOnly only adds the user info to the request context. No login check is performed.
	InfoOnly() func(next http.Handler) http.Handler
}

type Validator interface {
	// Struct validates the given struct.
	Struct(s any) error
}

// endregion handler-interfaces
