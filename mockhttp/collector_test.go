package mockhttp

import (
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	t.Run("given populated context, then gauges reflect registry sizes", func(t *testing.T) {
		t.Parallel()

		ctx := NewContext(WithName("fixture"))
		ctx.RegisterURL(StringResponse("a", http.StatusOK, nil), "http://a.test/a")
		ctx.RegisterURL(StringResponse("b", http.StatusOK, nil), "http://a.test/b")
		ctx.RegisterMatcher(StringResponse("m", http.StatusOK, nil), MethodIs(http.MethodPost))
		ctx.SetDefaultResponse(NewResponse(http.StatusNotFound, nil, nil))
		ctx.RecordRequest(mustRequest(t, http.MethodGet, "http://a.test/a"))

		expected := `
# HELP mockhttp_default_response_set 1 if a default response is set, 0 otherwise.
# TYPE mockhttp_default_response_set gauge
mockhttp_default_response_set{context="fixture"} 1
# HELP mockhttp_recorded_requests Number of requests in the request log.
# TYPE mockhttp_recorded_requests gauge
mockhttp_recorded_requests{context="fixture"} 1
# HELP mockhttp_registered_matchers Number of predicate registrations.
# TYPE mockhttp_registered_matchers gauge
mockhttp_registered_matchers{context="fixture"} 1
# HELP mockhttp_registered_urls Number of exact-URL registrations.
# TYPE mockhttp_registered_urls gauge
mockhttp_registered_urls{context="fixture"} 2
`
		require.NoError(t, testutil.CollectAndCompare(NewCollector(ctx), strings.NewReader(expected)))
	})

	t.Run("given empty context, then every gauge is zero", func(t *testing.T) {
		t.Parallel()

		c := NewCollector(NewContext())
		assert.Equal(t, 4, testutil.CollectAndCount(c))

		expected := `
# HELP mockhttp_registered_urls Number of exact-URL registrations.
# TYPE mockhttp_registered_urls gauge
mockhttp_registered_urls{context="mockhttp"} 0
`
		require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "mockhttp_registered_urls"))
	})

	t.Run("given registry, then collector registers cleanly", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewPedanticRegistry()
		require.NoError(t, reg.Register(NewCollector(NewContext())))

		families, err := reg.Gather()
		require.NoError(t, err)
		assert.Len(t, families, 4)
	})
}
