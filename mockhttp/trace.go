package mockhttp

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcome values for the mockhttp.outcome attribute.
const (
	OutcomeMatched  = "matched"
	OutcomeError    = "error"
	OutcomeUnmocked = "unmocked"
)

// startSpan starts the client span for an intercepted request:
// "MOCK {method}".
func (c *Context) startSpan(ctx context.Context, req Request) (context.Context, trace.Span) {
	return c.cfg.Tracer.Start(ctx, "MOCK "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(c.requestAttributes(req)...),
	)
}

// requestAttributes returns span attributes for the request.
func (c *Context) requestAttributes(req Request) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 6)
	attrs = append(attrs, c.cfg.baseAttributes(c.id)...)
	attrs = append(attrs, attribute.String("http.request.method", req.Method))

	if req.URL != nil {
		attrs = append(attrs, attribute.String("url.full", req.URL.String()))

		if host := req.URL.Hostname(); host != "" {
			attrs = append(attrs, attribute.String("server.address", host))
		}
		if port := req.URL.Port(); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				attrs = append(attrs, attribute.Int("server.port", p))
			}
		}
	}

	return attrs
}

// setSpanOutcome records how the request was answered.
func setSpanOutcome(span trace.Span, outcome string, statusCode int, err error) {
	span.SetAttributes(attribute.String("mockhttp.outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.type", outcome))
		return
	}

	span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
	if statusCode >= 400 {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
	}
}
