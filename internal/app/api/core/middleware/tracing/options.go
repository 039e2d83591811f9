package tracing

import "github.com/google/uuid"

// options is a struct that contains options for the tracing middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	upstreamReqIdHeader string
	maxUpstreamLength   int
	headerIdentifier    string
	generator           func() string
}

// Option is a type that is used to set options for the tracing middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithUpstreamHeader sets the upstream header name which should be used to fetch the request id.
// If no upstream header is found, a new id is generated.
// The default value is "X-Request-Id".
func WithUpstreamHeader(header string) Option {
	return func(o *options) {
		o.upstreamReqIdHeader = header
	}
}

// WithMaxUpstreamLength sets the maximum accepted length of an upstream request id. Longer ids are
// replaced by a generated one.
// The default value is 64.
func WithMaxUpstreamLength(length int) Option {
	return func(o *options) {
		o.maxUpstreamLength = length
	}
}

// WithHeaderIdentifier sets the name of the response header that carries the request id.
// If set to an empty string, no header is set.
// The default value is "X-Request-Id".
func WithHeaderIdentifier(identifier string) Option {
	return func(o *options) {
		o.headerIdentifier = identifier
	}
}

// WithIdGenerator sets the function that generates new request ids.
// If set to nil, only upstream ids are used.
// The default generator returns random UUIDs.
func WithIdGenerator(generator func() string) Option {
	return func(o *options) {
		o.generator = generator
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		upstreamReqIdHeader: "X-Request-Id",
		maxUpstreamLength:   64,
		headerIdentifier:    "X-Request-Id",
		generator:           uuid.NewString,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
