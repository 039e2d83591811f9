package logging

import "log/slog"

// options is a struct that contains options for the logging middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	logLevel     slog.Level
	statusLevels bool
	logger       *slog.Logger
	prefix       string

	contextRequestIdKey any
	headerRequestIdKey  string
	trustedProxies      []string
	skipPaths           []string
}

// Option is a type that is used to set options for the logging middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithLevel is a method that sets the log level of successful requests.
// The default value is slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithStatusLevels enables or disables raising the log level for 4xx and 5xx responses.
// The default value is true.
func WithStatusLevels(enabled bool) Option {
	return func(o *options) {
		o.statusLevels = enabled
	}
}

// WithPrefix is a method that sets the prefix for the logging middleware.
// If a prefix is set, it will be prepended to each log message. A space will
// be added between the prefix and the log message.
// The default value is an empty string.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithContextRequestIdKey is a method that sets the key for the request ID in the
// request context. If a key is set, the logging middleware will use this key to
// retrieve the request ID from the request context.
// The default value is nil, meaning the request ID will not be logged.
func WithContextRequestIdKey(key any) Option {
	return func(o *options) {
		o.contextRequestIdKey = key
	}
}

// WithHeaderRequestIdKey is a method that sets the key for the request ID in the
// request headers. If a key is set, the logging middleware will use this key to
// retrieve the request ID from the request headers.
// The default value is an empty string, meaning the request ID will not be logged.
func WithHeaderRequestIdKey(key string) Option {
	return func(o *options) {
		o.headerRequestIdKey = key
	}
}

// WithTrustedProxies sets the proxies whose X-Real-Ip and X-Forwarded-For headers are trusted.
// See request.ClientIp for the special value "PRIVATE".
func WithTrustedProxies(proxies ...string) Option {
	return func(o *options) {
		o.trustedProxies = proxies
	}
}

// WithSkipPaths disables logging for requests to the given paths, for example health checks.
func WithSkipPaths(paths ...string) Option {
	return func(o *options) {
		o.skipPaths = paths
	}
}

// WithLogger is a method that sets the logger for the logging middleware.
// The default logger is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		logLevel:     slog.LevelInfo,
		statusLevels: true,
		logger:       nil,
		prefix:       "",
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}
