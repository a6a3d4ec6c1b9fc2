package mockhttp

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestInterceptor_Spans(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(c *Context)
		url         string
		wantOutcome string
		wantStatus  codes.Code
	}{
		{
			name: "given matched request, then span has matched outcome",
			setup: func(c *Context) {
				c.RegisterURL(StringResponse("ok", http.StatusOK, nil), "http://example.com/ok")
			},
			url:         "http://example.com/ok",
			wantOutcome: OutcomeMatched,
			wantStatus:  codes.Unset,
		},
		{
			name: "given 500 response, then span status is error",
			setup: func(c *Context) {
				c.RegisterURL(NewResponse(http.StatusInternalServerError, nil, nil), "http://example.com/fail")
			},
			url:         "http://example.com/fail",
			wantOutcome: OutcomeMatched,
			wantStatus:  codes.Error,
		},
		{
			name: "given error response, then span has error outcome",
			setup: func(c *Context) {
				c.RegisterURL(ErrorResponse(errors.New("boom"), 0, nil), "http://example.com/err")
			},
			url:         "http://example.com/err",
			wantOutcome: OutcomeError,
			wantStatus:  codes.Error,
		},
		{
			name:        "given unmocked request, then span has unmocked outcome",
			setup:       func(*Context) {},
			url:         "http://example.com/none",
			wantOutcome: OutcomeUnmocked,
			wantStatus:  codes.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := tracetest.NewInMemoryExporter()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
			defer tp.Shutdown(context.Background())

			ctx := NewContext(WithTracerProvider(tp), WithName("spans"))
			tt.setup(ctx)

			resp, err := newTestClient(ctx).Get(tt.url)
			if err == nil {
				resp.Body.Close()
			}

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, "MOCK GET", spans[0].Name)
			assert.Equal(t, tt.wantStatus, spans[0].Status.Code)

			outcome, ok := spanAttr(spans[0].Attributes, "mockhttp.outcome")
			require.True(t, ok)
			assert.Equal(t, tt.wantOutcome, outcome.AsString())

			name, ok := spanAttr(spans[0].Attributes, "mockhttp.context.name")
			require.True(t, ok)
			assert.Equal(t, "spans", name.AsString())

			full, ok := spanAttr(spans[0].Attributes, "url.full")
			require.True(t, ok)
			assert.Equal(t, tt.url, full.AsString())
		})
	}
}

func TestInterceptor_Metrics(t *testing.T) {
	t.Run("given matched and unmocked requests, then counters record both", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer mp.Shutdown(context.Background())

		ctx := NewContext(WithMeterProvider(mp))
		ctx.RegisterURL(StringResponse("hello", http.StatusOK, nil), "http://example.com/ok")

		client := newTestClient(ctx)
		resp, err := client.Get("http://example.com/ok")
		require.NoError(t, err)
		resp.Body.Close()

		_, err = client.Get("http://example.com/none")
		require.Error(t, err)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(context.Background(), &rm))
		require.Len(t, rm.ScopeMetrics, 1)

		byName := make(map[string]metricdata.Metrics)
		for _, m := range rm.ScopeMetrics[0].Metrics {
			byName[m.Name] = m
		}

		requests, ok := byName["mockhttp.request.count"].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		var total int64
		for _, dp := range requests.DataPoints {
			total += dp.Value
		}
		assert.Equal(t, int64(2), total)

		unmocked, ok := byName["mockhttp.request.unmocked"].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, unmocked.DataPoints, 1)
		assert.Equal(t, int64(1), unmocked.DataPoints[0].Value)

		sizes, ok := byName["mockhttp.response.body.size"].Data.(metricdata.Histogram[int64])
		require.True(t, ok)
		require.Len(t, sizes.DataPoints, 1)
		assert.Equal(t, uint64(1), sizes.DataPoints[0].Count)
		assert.Equal(t, int64(5), sizes.DataPoints[0].Sum)
	})
}

func TestInterceptor_Logging(t *testing.T) {
	t.Run("given unmocked request, then warn log carries curl command", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.WarnLevel)

		ctx := NewContext(WithLogger(logger))
		_, err := newTestClient(ctx).Get("http://example.com/missing")
		require.Error(t, err)

		out := buf.String()
		assert.Contains(t, out, `"level":"warn"`)
		assert.Contains(t, out, "request not registered")
		assert.Contains(t, out, "curl 'http://example.com/missing'")
	})

	t.Run("given matched request at warn level, then nothing is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.WarnLevel)

		ctx := NewContext(WithLogger(logger))
		ctx.SetDefaultResponse(NewResponse(http.StatusOK, nil, nil))

		resp, err := newTestClient(ctx).Get("http://example.com/x")
		require.NoError(t, err)
		resp.Body.Close()

		assert.Empty(t, buf.String())
	})
}
