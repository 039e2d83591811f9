package recovery

import (
	"log/slog"
	"net/http"
)

// options is a struct that contains options for the recovery middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	logger    *slog.Logger
	logPrefix string

	errCallbackOverride        bool
	errCallback                func(err error, stack []byte, w http.ResponseWriter, r *http.Request)
	brokenPipeCallbackOverride bool
	brokenPipeCallback         func(err error, stack []byte, w http.ResponseWriter, r *http.Request)

	logCallbackOverride bool
	logCallback         func(err error, stack []byte, brokenPipe bool)
}

// Option is a type that is used to set options for the recovery middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithErrCallback sets the error callback function for the recovery middleware.
// The error callback function is called when a panic is recovered by the middleware.
// This function completely overrides the default behavior of the middleware. It is the
// responsibility of the user to handle the error and write a response to the client.
//
// Ensure that this function does not panic, as it will be called in a deferred function!
func WithErrCallback(fn func(err error, stack []byte, w http.ResponseWriter, r *http.Request)) Option {
	return func(o *options) {
		o.errCallback = fn
		o.errCallbackOverride = true
	}
}

// WithBrokenPipeCallback sets the broken pipe callback function for the recovery middleware.
// The broken pipe callback function is called when a broken pipe error is recovered by the middleware.
//
// Ensure that this function does not panic, as it will be called in a deferred function!
func WithBrokenPipeCallback(fn func(err error, stack []byte, w http.ResponseWriter, r *http.Request)) Option {
	return func(o *options) {
		o.brokenPipeCallback = fn
		o.brokenPipeCallbackOverride = true
	}
}

// WithLogCallback sets the log callback function for the recovery middleware.
// It replaces the default behavior of logging the error and stack trace in Error level.
//
// Ensure that this function does not panic, as it will be called in a deferred function!
func WithLogCallback(fn func(err error, stack []byte, brokenPipe bool)) Option {
	return func(o *options) {
		o.logCallback = fn
		o.logCallbackOverride = true
	}
}

// WithLogger sets the structured logger of the default log callback.
// The default logger is slog.Default(). A nil logger disables the default log callback.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogPrefix sets the prefix of the default log callback.
// A space will be added between the prefix and the log message.
// The default value is an empty string.
func WithLogPrefix(prefix string) Option {
	return func(o *options) {
		o.logPrefix = prefix
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		logger:             slog.Default(),
		errCallback:        nil,
		brokenPipeCallback: nil, // by default, ignore broken pipe errors
		logPrefix:          "",
		logCallback:        nil,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.errCallback == nil && !o.errCallbackOverride {
		o.errCallback = getDefaultErrCallback(o)
	}
	if o.logCallback == nil && !o.logCallbackOverride {
		o.logCallback = getDefaultLogCallback(o)
	}

	return o
}
