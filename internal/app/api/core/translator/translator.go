// Package translator converts every error that leaves a request handler into a response envelope.
package translator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/manqiyou/manqiyou/internal/app/api/core/envelope"
	"github.com/manqiyou/manqiyou/internal/app/api/core/respond"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// Class is the category an error was matched to.
type Class string

const (
	ClassDomain          Class = "domain"
	ClassValidation      Class = "validation"
	ClassIllegalArgument Class = "illegal_argument"
	ClassUnclassified    Class = "unclassified"
	// ClassNone is reported to the observer for envelopes that were returned without an error.
	ClassNone Class = "none"
)

// ValidationFailedMessage is used for validation errors that carry no field messages.
const ValidationFailedMessage = "validation failed"

// HandlerFunc is a request handler that either returns an envelope or an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error)

// Translator is the boundary component that turns errors into envelopes.
// It carries no mutable state and is safe for concurrent use.
type Translator struct {
	o options
}

// New returns a new error translator with the provided options.
func New(opts ...Option) *Translator {
	return &Translator{
		o: newOptions(opts...),
	}
}

// Classify returns the class of the given error without translating it.
// A typed nil pointer in the error chain does not count as a match.
func Classify(err error) Class {
	var domainErr *domain.DomainError
	var validationErr *domain.ValidationError
	var fieldErrs validator.ValidationErrors
	var illegalErr *domain.IllegalArgumentError

	switch {
	case err == nil:
		return ClassUnclassified
	case errors.As(err, &domainErr) && domainErr != nil:
		return ClassDomain
	case errors.As(err, &validationErr) && validationErr != nil, errors.As(err, &fieldErrs):
		return ClassValidation
	case errors.As(err, &illegalErr) && illegalErr != nil:
		return ClassIllegalArgument
	default:
		return ClassUnclassified
	}
}

// Translate converts the error into an envelope. It never fails: errors that match no known class
// produce a generic internal server error envelope whose message does not contain the error text.
func (t *Translator) Translate(ctx context.Context, err error) envelope.Response[any] {
	var resp envelope.Response[any]
	class := Classify(err)

	switch class {
	case ClassDomain:
		var domainErr *domain.DomainError
		errors.As(err, &domainErr)
		t.log(ctx, slog.LevelWarn, "business error", "code", domainErr.Code, "message", domainErr.Message,
			"cause", domainErr.Cause)
		resp = envelope.ErrorCode(domainErr.Code, domainErr.Message)
	case ClassValidation:
		message := strings.Join(validationMessages(err), t.o.fieldSeparator)
		if message == "" {
			message = ValidationFailedMessage
		}
		t.log(ctx, slog.LevelWarn, "validation failed", "message", message)
		resp = envelope.ErrorCode(http.StatusBadRequest, message)
	case ClassIllegalArgument:
		var illegalErr *domain.IllegalArgumentError
		errors.As(err, &illegalErr)
		t.log(ctx, slog.LevelWarn, "illegal argument", "message", illegalErr.Message)
		resp = envelope.ErrorCode(http.StatusBadRequest, illegalErr.Message)
	default:
		t.log(ctx, slog.LevelError, "unexpected error", "error", err)
		resp = envelope.ErrorCode(http.StatusInternalServerError, t.o.internalMessage)
	}

	t.observe(class, resp.Code)

	return resp
}

// Write translates the error and writes the resulting envelope to the response writer.
func (t *Translator) Write(w http.ResponseWriter, r *http.Request, err error) {
	resp := t.Translate(r.Context(), err)
	respond.Envelope(w, resp)
}

// Handler adapts a HandlerFunc to a http.HandlerFunc. Errors are translated, envelopes are written as they are.
func (t *Translator) Handler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(w, r)
		if err != nil {
			t.Write(w, r, err)
			return
		}
		if resp == nil {
			resp = envelope.Success()
		}

		t.observe(ClassNone, resp.StatusCode())
		respond.Envelope(w, resp)
	}
}

// RecoveryCallback returns a callback for the recovery middleware that answers recovered panics with an envelope.
func (t *Translator) RecoveryCallback() func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
	return func(err error, _ []byte, w http.ResponseWriter, r *http.Request) {
		t.Write(w, r, err)
	}
}

// NotFoundHandler answers requests for unknown endpoints.
func (t *Translator) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Write(w, r, domain.NotFound("endpoint not found"))
	}
}

// MethodNotAllowed is a middleware that replaces the plain text 405 answer of the router with an envelope.
// The Allow header set by the router is kept.
func (t *Translator) MethodNotAllowed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&methodNotAllowedWriter{ResponseWriter: w, t: t, r: r}, r)
	})
}

// region internal-helpers

// methodNotAllowedWriter intercepts 405 responses that were written with http.Error.
type methodNotAllowedWriter struct {
	http.ResponseWriter
	t *Translator
	r *http.Request

	intercepted bool
}

func (w *methodNotAllowedWriter) WriteHeader(code int) {
	if code != http.StatusMethodNotAllowed || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		w.ResponseWriter.WriteHeader(code)
		return
	}

	w.intercepted = true
	w.Header().Del("X-Content-Type-Options")
	w.t.Write(w.ResponseWriter, w.r, domain.NewError(code, "method not allowed"))
}

func (w *methodNotAllowedWriter) Write(b []byte) (int, error) {
	if w.intercepted {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *methodNotAllowedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func validationMessages(err error) []string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return validationErr.Messages()
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			messages[i] = fe.Field() + " failed on " + fe.Tag()
		}
		return messages
	}

	return nil
}

// log never blocks the response, a failing handler only loses the record.
func (t *Translator) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	defer func() {
		_ = recover()
	}()

	if t.o.logPrefix != "" {
		msg = t.o.logPrefix + " " + msg
	}
	t.o.logger.Log(ctx, level, msg, args...)
}

func (t *Translator) observe(class Class, code int) {
	if t.o.observer == nil {
		return
	}

	defer func() {
		_ = recover()
	}()
	t.o.observer(class, code)
}

// endregion internal-helpers
