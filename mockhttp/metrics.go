package mockhttp

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics holds the metric instruments for intercepted requests.
type metrics struct {
	// requestCount counts intercepted requests by outcome.
	requestCount metric.Int64Counter

	// unmockedCount counts requests nothing was registered for.
	unmockedCount metric.Int64Counter

	// responseBodySize measures delivered mock bodies in bytes.
	responseBodySize metric.Int64Histogram
}

// newMetrics creates and registers metric instruments.
func newMetrics(meter metric.Meter) (*metrics, error) {
	m := &metrics{}
	var err error

	m.requestCount, err = meter.Int64Counter(
		"mockhttp.request.count",
		metric.WithDescription("Number of requests answered by the mock interceptor"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.unmockedCount, err = meter.Int64Counter(
		"mockhttp.request.unmocked",
		metric.WithDescription("Number of intercepted requests with no registered response"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.responseBodySize, err = meter.Int64Histogram(
		"mockhttp.response.body.size",
		metric.WithDescription("Size of mocked response bodies in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(
			0, 100, 1024, 10*1024, 100*1024, 1024*1024,
		),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// recordRequest counts one intercepted request.
func (m *metrics) recordRequest(ctx context.Context, outcome string, attrs []attribute.KeyValue) {
	if m == nil || m.requestCount == nil {
		return
	}
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attrs...)
	allAttrs = append(allAttrs, attribute.String("mockhttp.outcome", outcome))
	m.requestCount.Add(ctx, 1, metric.WithAttributes(allAttrs...))
}

// recordUnmocked counts one unmocked request.
func (m *metrics) recordUnmocked(ctx context.Context, attrs []attribute.KeyValue) {
	if m == nil || m.unmockedCount == nil {
		return
	}
	m.unmockedCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// recordResponseBodySize records the size of a delivered body.
func (m *metrics) recordResponseBodySize(ctx context.Context, size int64, attrs []attribute.KeyValue) {
	if m == nil || m.responseBodySize == nil {
		return
	}
	m.responseBodySize.Record(ctx, size, metric.WithAttributes(attrs...))
}
