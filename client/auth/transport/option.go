package transport

import (
	"net/http"

	"github.com/viant/bearer/client/auth/resource"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Option func(*RoundTripper)

// WithTransport sets the downstream transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithAllowList sets the allow list gating token attachment; nil attaches tokens to every protected request.
func WithAllowList(allowList *resource.AllowList) Option {
	return func(t *RoundTripper) {
		t.allowList = allowList
	}
}

// WithStartPage sets the function computing where a redirect flow returns to.
func WithStartPage(fn func(req *http.Request) string) Option {
	return func(t *RoundTripper) {
		t.startPage = fn
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}

// WithTracerProvider sets tracer provider
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(t *RoundTripper) {
		t.tracer = provider.Tracer(instrumentationName)
	}
}
