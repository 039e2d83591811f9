package translator

import "log/slog"

// InternalErrorMessage is the fixed message of all unclassified errors.
const InternalErrorMessage = "internal server error"

// options is a struct that contains options for the error translator.
// It uses the functional options pattern for flexible configuration.
type options struct {
	logger          *slog.Logger
	logPrefix       string
	internalMessage string
	fieldSeparator  string
	observer        func(class Class, code int)
}

// Option is a type that is used to set options for the error translator.
// It implements the functional options pattern.
type Option func(*options)

// WithLogger sets the structured logger that receives the diagnostics of every translation.
// The default logger is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogPrefix sets a prefix for all log messages. A space will be added between the prefix and
// the log message.
// The default value is an empty string.
func WithLogPrefix(prefix string) Option {
	return func(o *options) {
		o.logPrefix = prefix
	}
}

// WithInternalMessage overrides the message that is sent to clients for unclassified errors.
// The default value is InternalErrorMessage.
func WithInternalMessage(message string) Option {
	return func(o *options) {
		o.internalMessage = message
	}
}

// WithObserver registers a callback that is invoked once per translation with the
// error class and the resulting envelope code. It is used to collect metrics.
//
// Ensure that this function does not panic, as it may be called in a deferred function!
func WithObserver(fn func(class Class, code int)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		logger:          nil,
		logPrefix:       "",
		internalMessage: InternalErrorMessage,
		fieldSeparator:  ", ",
		observer:        nil,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}
