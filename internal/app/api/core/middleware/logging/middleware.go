// Package logging writes one structured log record per handled request.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/manqiyou/manqiyou/internal/app/api/core/request"
)

// Middleware is a type that creates a new logging middleware. The logging middleware
// logs information about each request.
type Middleware struct {
	o options
}

// New returns a new logging middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the logging middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.Contains(m.o.skipPaths, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ww := newWriterWrapper(w)
		start := time.Now()
		defer func() {
			msg, args := m.buildMessageAndArguments(r, start, ww)
			m.o.logger.Log(r.Context(), m.levelFor(ww.StatusCode), m.addPrefix(msg), args...)
		}()

		next.ServeHTTP(ww, r)
	})
}

// levelFor raises the configured level for failed requests. Client errors are logged as warnings,
// server errors as errors.
func (m *Middleware) levelFor(status int) slog.Level {
	if !m.o.statusLevels {
		return m.o.logLevel
	}

	switch {
	case status >= http.StatusInternalServerError:
		return max(m.o.logLevel, slog.LevelError)
	case status >= http.StatusBadRequest:
		return max(m.o.logLevel, slog.LevelWarn)
	default:
		return m.o.logLevel
	}
}

func (m *Middleware) buildMessageAndArguments(
	r *http.Request,
	start time.Time,
	ww *writerWrapper,
) (message string, args []any) {
	message = fmt.Sprintf("%s %s", r.Method, r.URL.Path)

	// Use a fixed order for the keys, so that the message is always the same.
	args = []any{
		"protocol", r.Proto,
		"status", ww.StatusCode,
		"dataLength", ww.WrittenBytes,
		"duration", time.Since(start).String(),
		"clientIP", request.ClientIp(r, m.o.trustedProxies...),
		"userAgent", r.UserAgent(),
	}
	if referer := r.Referer(); referer != "" {
		args = append(args, "referer", referer)
	}
	if m.o.headerRequestIdKey != "" {
		args = append(args, "headerRequestId", r.Header.Get(m.o.headerRequestIdKey))
	}
	if m.o.contextRequestIdKey != nil {
		if rid, ok := contextString(r.Context(), m.o.contextRequestIdKey); ok {
			args = append(args, "contextRequestId", rid)
		}
	}

	return
}

func contextString(ctx context.Context, key any) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok
}

func (m *Middleware) addPrefix(message string) string {
	if m.o.prefix != "" {
		return m.o.prefix + " " + message
	}
	return message
}
