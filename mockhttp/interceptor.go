package mockhttp

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kroma-labs/mockhttp/protocol"
)

// Compile-time interface check.
var _ protocol.Handler = (*Interceptor)(nil)

// Interceptor is the protocol handler that answers requests from a Context.
//
// An Interceptor bound to a Context always serves that Context. An unbound
// one (NewInterceptor(nil)) serves whichever Context is active at request
// time and fails every request while none is.
type Interceptor struct {
	ctx     *Context
	schemes map[string]struct{}
}

// NewInterceptor creates an interceptor for ctx. A nil ctx follows the
// active Context.
//
// Example - explicit injection without the active slot:
//
//	ctx := mockhttp.NewContext()
//	client := &http.Client{Transport: mockhttp.NewInterceptor(ctx)}
func NewInterceptor(ctx *Context) *Interceptor {
	schemes := defaultSchemes
	if ctx != nil {
		schemes = ctx.cfg.Schemes
	}
	return newInterceptor(ctx, schemes)
}

func newInterceptor(ctx *Context, schemes []string) *Interceptor {
	set := make(map[string]struct{}, len(schemes))
	for _, s := range schemes {
		set[strings.ToLower(s)] = struct{}{}
	}
	return &Interceptor{ctx: ctx, schemes: set}
}

// CanHandle reports whether the request's URL scheme is one the
// interceptor was configured for.
func (i *Interceptor) CanHandle(req *http.Request) bool {
	if req.URL == nil {
		return false
	}
	_, ok := i.schemes[strings.ToLower(req.URL.Scheme)]
	return ok
}

// RoundTrip implements http.RoundTripper.
//
// The request is logged on the Context and resolved. A registered error is
// returned as the round-trip error; a registered response is delivered with
// its status, headers, and body as given; no match yields *UnmockedError.
// A request body that cannot be read fails the request before anything is
// logged.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	desc, err := NewRequest(req)
	if req.Body != nil {
		req.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("mockhttp: %w", err)
	}

	c := i.ctx
	if c == nil {
		c = Active()
	}
	if c == nil {
		return nil, newUnmockedError(desc)
	}
	return c.serve(req, desc)
}

// serve records desc, resolves it, and turns the result into what the
// host client expects from a transport.
func (c *Context) serve(req *http.Request, desc Request) (*http.Response, error) {
	ctx, span := c.startSpan(req.Context(), desc)
	defer span.End()

	c.RecordRequest(desc)
	resp := c.ResolveRequest(desc)

	attrs := c.cfg.baseAttributes(c.id)

	if resp == nil {
		err := newUnmockedError(desc)
		c.cfg.Logger.Warn().
			Str("context_id", c.id).
			Str("method", desc.Method).
			Str("url", desc.URLString()).
			Str("curl", desc.Curl()).
			Msg("request not registered")
		setSpanOutcome(span, OutcomeUnmocked, 0, err)
		c.cfg.Metrics.recordRequest(ctx, OutcomeUnmocked, attrs)
		c.cfg.Metrics.recordUnmocked(ctx, attrs)
		return nil, err
	}

	if resp.Err != nil {
		c.cfg.Logger.Debug().
			Str("context_id", c.id).
			Str("method", desc.Method).
			Str("url", desc.URLString()).
			Err(resp.Err).
			Msg("mocked request failed")
		setSpanOutcome(span, OutcomeError, resp.StatusCode, resp.Err)
		c.cfg.Metrics.recordRequest(ctx, OutcomeError, attrs)
		return nil, resp.Err
	}

	c.cfg.Logger.Debug().
		Str("context_id", c.id).
		Str("method", desc.Method).
		Str("url", desc.URLString()).
		Int("status", resp.StatusCode).
		Int("body_size", len(resp.Body)).
		Msg("mocked request served")
	setSpanOutcome(span, OutcomeMatched, resp.StatusCode, nil)
	c.cfg.Metrics.recordRequest(ctx, OutcomeMatched, attrs)
	c.cfg.Metrics.recordResponseBodySize(ctx, int64(len(resp.Body)), attrs)

	return resp.toHTTP(req), nil
}
