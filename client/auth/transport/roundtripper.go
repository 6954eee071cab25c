package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/viant/bearer/client/auth/resource"
	"github.com/viant/bearer/client/auth/service"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/viant/bearer/client/auth/transport"

// ErrRedirectInProgress is returned when a redirect flow replaced the request.
var ErrRedirectInProgress = errors.New("redirect token acquisition in progress")

type RoundTripper struct {
	config    *Config
	service   service.Service
	allowList *resource.AllowList
	startPage func(req *http.Request) string
	transport http.RoundTripper
	logger    *zap.Logger
	tracer    trace.Tracer
}

func New(config *Config, srv service.Service, options ...Option) (*RoundTripper, error) {
	if config == nil {
		return nil, errors.New("interceptor config was empty")
	}
	if !config.InteractionType.Valid() {
		return nil, fmt.Errorf("invalid interaction type: %v", config.InteractionType)
	}
	if srv == nil {
		return nil, errors.New("authentication service was empty")
	}
	ret := &RoundTripper{
		config:    config,
		service:   srv,
		allowList: resource.DefaultAllowList(),
		startPage: requestURL,
		transport: http.DefaultTransport,
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(instrumentationName),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	URL := req.URL.String()
	scopes := r.config.ProtectedResourceMap.Scopes(URL)
	if len(scopes) == 0 {
		return r.transport.RoundTrip(req)
	}
	result, err := r.Token(req.Context(), req, scopes)
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}
	if !r.allowList.Allowed(URL) {
		r.logger.Warn("Token acquired but not attached, URL is outside the allow list.",
			zap.String("url", req.URL.Redacted()),
			zap.Strings("scopes", scopes),
			zap.Strings("allowList", r.allowList.Patterns()))
		return r.transport.RoundTrip(req)
	}
	authorized := req.Clone(req.Context())
	authorized.Header.Set("Authorization", "Bearer "+result.AccessToken)
	return r.transport.RoundTrip(authorized)
}

// Token acquires a token for scopes: silently first, then with the configured interaction.
func (r *RoundTripper) Token(ctx context.Context, req *http.Request, scopes []string) (*service.Result, error) {
	ctx, span := r.tracer.Start(ctx, "bearer.AcquireToken", trace.WithAttributes(
		attribute.StringSlice("bearer.scopes", scopes),
		attribute.String("bearer.interaction", r.config.InteractionType.String()),
	))
	defer span.End()

	anAccount := service.CurrentAccount(r.service)
	result, err := r.service.AcquireTokenSilent(ctx, &service.SilentRequest{Scopes: scopes, Account: anAccount})
	if err == nil {
		span.SetAttributes(attribute.Bool("bearer.from_cache", result.FromCache))
		return result, nil
	}
	r.logger.Debug("Silent token acquisition failed, falling back to interaction.",
		zap.Strings("scopes", scopes),
		zap.Stringer("interaction", r.config.InteractionType),
		zap.Error(err))
	span.AddEvent("silent acquisition failed", trace.WithAttributes(attribute.String("error", err.Error())))

	request := r.config.AuthRequest.WithScopes(scopes)
	if r.config.InteractionType == service.InteractionPopup {
		if result, err = r.service.AcquireTokenPopup(ctx, request); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to acquire token for %v: %w", req.URL.Redacted(), err)
		}
		return result, nil
	}
	request.RedirectStartPage = r.startPage(req)
	if err = r.service.AcquireTokenRedirect(ctx, request); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to start redirect token acquisition: %w", err)
	}
	span.AddEvent("redirect started")
	return nil, ErrRedirectInProgress
}

func requestURL(req *http.Request) string {
	return req.URL.String()
}
