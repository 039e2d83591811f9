package cors

import (
	"net/http"
	"strings"
)

// DefaultExposedHeaders are readable by browser scripts in addition to the CORS-safelisted headers.
var DefaultExposedHeaders = []string{"Authorization", "Content-Type", "X-Total-Count"}

type void struct{}

// options is a struct that contains options for the CORS middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	allowedOrigins        []string   // origins without wildcards
	allowedOriginPatterns []wildcard // origins with wildcards
	allowedMethods        []string
	allowedHeaders        map[string]void
	exposedHeaders        []string
	allowCredentials      bool
	maxAge                int
}

// Option is a type that is used to set options for the CORS middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithAllowedOrigins sets the allowed origins for the CORS middleware.
// If the special "*" value is present in the list, all origins will be allowed.
// An origin may contain one wildcard (*) to replace 0 or more characters (i.e.: https://*.manqiyou.cn).
// By default, all origins are allowed (*).
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) {
		o.allowedOrigins = nil
		o.allowedOriginPatterns = nil

		for _, origin := range origins {
			if len(origin) > 1 && strings.Contains(origin, "*") {
				o.allowedOriginPatterns = append(o.allowedOriginPatterns, newWildcard(origin))
			} else {
				o.allowedOrigins = append(o.allowedOrigins, origin)
			}
		}
	}
}

// WithAllowedMethods sets the allowed methods for the CORS middleware.
// By default, GET, POST, PUT, DELETE, OPTIONS and HEAD are allowed.
func WithAllowedMethods(methods ...string) Option {
	return func(o *options) {
		o.allowedMethods = methods
	}
}

// WithAllowedHeaders sets the allowed request headers for the CORS middleware.
// By default, all headers are allowed (*).
func WithAllowedHeaders(headers ...string) Option {
	return func(o *options) {
		o.allowedHeaders = make(map[string]void)

		for _, header := range headers {
			// allowed headers are always checked in lowercase
			o.allowedHeaders[strings.ToLower(header)] = void{}
		}
	}
}

// WithExposedHeaders sets the exposed headers for the CORS middleware.
// By default, DefaultExposedHeaders are exposed.
func WithExposedHeaders(headers ...string) Option {
	return func(o *options) {
		o.exposedHeaders = nil

		for _, header := range headers {
			o.exposedHeaders = append(o.exposedHeaders, http.CanonicalHeaderKey(header))
		}
	}
}

// WithAllowCredentials sets whether the request can include user credentials like
// cookies or the Authorization header.
// By default, credentials are allowed.
func WithAllowCredentials(allow bool) Option {
	return func(o *options) {
		o.allowCredentials = allow
	}
}

// WithMaxAge sets how long (in seconds) the results of a preflight request can be cached.
// A value of 0 means that no Access-Control-Max-Age header is sent.
// By default, the max age is 3600 seconds.
func WithMaxAge(age int) Option {
	return func(o *options) {
		o.maxAge = age
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		allowedOrigins: []string{"*"},
		allowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		allowedHeaders:   map[string]void{"*": {}},
		exposedHeaders:   DefaultExposedHeaders,
		allowCredentials: true,
		maxAge:           3600,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
