// Package recovery turns panics of downstream handlers into error responses.
package recovery

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/manqiyou/manqiyou/internal/app/api/core/envelope"
	"github.com/manqiyou/manqiyou/internal/app/api/core/respond"
)

// Middleware is a type that creates a new recovery middleware. The recovery middleware
// recovers from panics and answers with an error envelope. This middleware should
// be the first middleware in the middleware chain, so that it can recover from panics in other
// middlewares.
type Middleware struct {
	o options
}

// New returns a new recovery middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the recovery middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			realErr, ok := rec.(error)
			if !ok {
				realErr = fmt.Errorf("panic: %v", rec)
			}
			if errors.Is(realErr, http.ErrAbortHandler) {
				panic(rec) // let net/http abort the connection
			}

			stack := debug.Stack()

			// Check for a broken connection, as it is not really a
			// condition that warrants a panic stack trace.
			brokenPipe := isBrokenPipeError(realErr)

			if m.o.logCallback != nil {
				m.o.logCallback(realErr, stack, brokenPipe)
			}

			switch {
			case brokenPipe && m.o.brokenPipeCallback != nil:
				m.o.brokenPipeCallback(realErr, stack, w, r)
			case !brokenPipe && m.o.errCallback != nil:
				m.o.errCallback(realErr, stack, w, r)
			default:
				// nobody listens on a broken connection
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func addPrefix(o options, message string) string {
	if o.logPrefix != "" {
		return o.logPrefix + " " + message
	}
	return message
}

// getDefaultErrCallback answers with a generic 500 envelope. The panic value never reaches the client.
func getDefaultErrCallback(_ options) func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
	return func(_ error, _ []byte, w http.ResponseWriter, _ *http.Request) {
		respond.Envelope(w, envelope.Error("internal server error"))
	}
}

// getDefaultLogCallback logs the error and stack trace with the configured slog logger in Error level.
func getDefaultLogCallback(o options) func(error, []byte, bool) {
	return func(err error, stack []byte, brokenPipe bool) {
		if brokenPipe || o.logger == nil {
			return // by default, ignore broken pipe errors
		}

		o.logger.Error(addPrefix(o, "recovered from panic"), "error", err, "stack", string(stack))
	}
}

func isBrokenPipeError(err error) bool {
	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		errMsg := strings.ToLower(syscallErr.Err.Error())
		if strings.Contains(errMsg, "broken pipe") ||
			strings.Contains(errMsg, "connection reset by peer") {
			return true
		}
	}

	return false
}
