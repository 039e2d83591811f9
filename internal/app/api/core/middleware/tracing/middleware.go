// Package tracing assigns a request id to every request.
package tracing

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// ContextKey is the request context key of the request id.
var ContextKey = ctxKey{}

// Middleware is a type that creates a new tracing middleware. The tracing middleware
// can be used to trace requests based on a request ID header or parameter.
type Middleware struct {
	o options
}

// New returns a new tracing middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the tracing middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqId string

		// read upstream header und re-use it
		if m.o.upstreamReqIdHeader != "" {
			reqId = r.Header.Get(m.o.upstreamReqIdHeader)
			if len(reqId) > m.o.maxUpstreamLength {
				reqId = ""
			}
		}

		// generate new id
		if reqId == "" && m.o.generator != nil {
			reqId = m.o.generator()
		}

		if reqId != "" {
			if m.o.headerIdentifier != "" {
				w.Header().Set(m.o.headerIdentifier, reqId)
			}
			r = r.WithContext(context.WithValue(r.Context(), ContextKey, reqId))
		}

		next.ServeHTTP(w, r) // execute the next handler
	})
}

// RequestId returns the request id of the given request context, or an empty string.
func RequestId(ctx context.Context) string {
	reqId, _ := ctx.Value(ContextKey).(string)
	return reqId
}
