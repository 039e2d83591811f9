// Package cors answers preflight requests and adds the Cross-Origin Resource Sharing headers
// that browsers need to call the API from the website origins.
package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const preflightVary = "Origin, Access-Control-Request-Method, Access-Control-Request-Headers"

// Middleware is a type that creates a new CORS middleware. The CORS middleware
// adds Cross-Origin Resource Sharing headers to the response.
type Middleware struct {
	o options

	allOrigins    bool   // all origins are allowed
	exposeHeaders string // precomputed Access-Control-Expose-Headers value
}

// New returns a new CORS middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o:             o,
		allOrigins:    slices.Contains(o.allowedOrigins, "*"),
		exposeHeaders: strings.Join(o.exposedHeaders, ", "),
	}

	return m
}

// Handler returns the CORS middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Handle preflight requests and stop the chain as some other
		// middleware may not handle OPTIONS requests correctly.
		// https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#preflighted_requests
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			m.handlePreflight(w, r)
			w.WriteHeader(http.StatusNoContent) // always return 204 No Content
			return
		}

		m.handleNormal(w, r)
		next.ServeHTTP(w, r) // execute the next handler
	})
}

// region internal-helpers

// handlePreflight writes the CORS headers of a valid preflight request. Invalid preflight requests
// get no CORS headers, so the browser rejects the actual request.
func (m *Middleware) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Vary", preflightVary)

	origin := r.Header.Get("Origin")
	if origin == "" || !m.originAllowed(origin) {
		return
	}

	reqMethod := r.Header.Get("Access-Control-Request-Method")
	if !m.methodAllowed(reqMethod) {
		return
	}

	reqHeaders := r.Header.Get("Access-Control-Request-Headers")
	if !m.headersAllowed(reqHeaders) {
		return
	}

	m.setOriginHeaders(w, origin)
	w.Header().Set("Access-Control-Allow-Methods", reqMethod)
	if reqHeaders != "" {
		w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
	}
	if m.o.maxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(m.o.maxAge))
	}
}

// handleNormal writes the CORS headers of an actual cross-origin request.
func (m *Middleware) handleNormal(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Vary", "Origin")

	origin := r.Header.Get("Origin")
	if origin == "" || !m.originAllowed(origin) || !m.methodAllowed(r.Method) {
		return
	}

	m.setOriginHeaders(w, origin)
	if m.exposeHeaders != "" {
		w.Header().Set("Access-Control-Expose-Headers", m.exposeHeaders)
	}
}

// setOriginHeaders sets the allowed origin. Browsers refuse a "*" origin for credentialed requests,
// so the request origin is echoed in that case.
func (m *Middleware) setOriginHeaders(w http.ResponseWriter, origin string) {
	if m.allOrigins && !m.o.allowCredentials {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	if m.o.allowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func (m *Middleware) originAllowed(origin string) bool {
	if m.allOrigins || slices.Contains(m.o.allowedOrigins, origin) {
		return true
	}

	for _, allowedOrigin := range m.o.allowedOriginPatterns {
		if allowedOrigin.match(origin) {
			return true
		}
	}

	return false
}

func (m *Middleware) methodAllowed(method string) bool {
	if method == http.MethodOptions {
		return true // preflight request is always allowed
	}

	return slices.Contains(m.o.allowedMethods, "*") || slices.Contains(m.o.allowedMethods, method)
}

func (m *Middleware) headersAllowed(headers string) bool {
	if headers == "" {
		return true
	}
	if len(m.o.allowedHeaders) == 0 {
		return false
	}
	if _, ok := m.o.allowedHeaders["*"]; ok {
		return true
	}

	// the header list is lowercase and comma separated
	// https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Request-Headers
	for header := range strings.SplitSeq(headers, ",") {
		if _, ok := m.o.allowedHeaders[strings.ToLower(strings.TrimSpace(header))]; !ok {
			return false
		}
	}

	return true
}

// endregion internal-helpers
