package mockhttp

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		matcher Matcher
		method  string
		url     string
		header  map[string]string
		want    bool
	}{
		{name: "given same method, then MethodIs matches", matcher: MethodIs(http.MethodPost), method: http.MethodPost, url: "http://a.test/", want: true},
		{name: "given other method, then MethodIs does not match", matcher: MethodIs(http.MethodPost), method: http.MethodGet, url: "http://a.test/"},
		{name: "given exact url, then URLIs matches", matcher: URLIs("http://a.test/x?q=1"), method: http.MethodGet, url: "http://a.test/x?q=1", want: true},
		{name: "given different query, then URLIs does not match", matcher: URLIs("http://a.test/x?q=1"), method: http.MethodGet, url: "http://a.test/x?q=2"},
		{name: "given host with port, then HostIs compares host and port", matcher: HostIs("a.test:8080"), method: http.MethodGet, url: "http://a.test:8080/x", want: true},
		{name: "given same path, then PathIs matches", matcher: PathIs("/x"), method: http.MethodGet, url: "https://b.test/x", want: true},
		{name: "given regexp path, then PathMatches matches", matcher: PathMatches(`^/users/\d+$`), method: http.MethodGet, url: "http://a.test/users/42", want: true},
		{name: "given non-numeric id, then PathMatches does not match", matcher: PathMatches(`^/users/\d+$`), method: http.MethodGet, url: "http://a.test/users/me"},
		{name: "given header value, then HeaderIs matches", matcher: HeaderIs("X-Env", "test"), method: http.MethodGet, url: "http://a.test/", header: map[string]string{"X-Env": "test"}, want: true},
		{name: "given query value, then QueryIs matches", matcher: QueryIs("page", "2"), method: http.MethodGet, url: "http://a.test/?page=2", want: true},
		{name: "given route with param, then Route matches", matcher: Route(http.MethodGet, "/users/{id}"), method: http.MethodGet, url: "http://a.test/users/7", want: true},
		{name: "given route with other method, then Route does not match", matcher: Route(http.MethodGet, "/users/{id}"), method: http.MethodDelete, url: "http://a.test/users/7"},
		{name: "given route without method, then any method matches", matcher: Route("", "/files/*"), method: http.MethodPut, url: "http://a.test/files/a/b", want: true},
		{name: "given lowercase route method, then it is normalized", matcher: Route("post", "/items"), method: http.MethodPost, url: "http://a.test/items", want: true},
		{name: "given all matching, then All matches", matcher: All(MethodIs(http.MethodGet), PathIs("/x")), method: http.MethodGet, url: "http://a.test/x", want: true},
		{name: "given one failing, then All does not match", matcher: All(MethodIs(http.MethodGet), PathIs("/y")), method: http.MethodGet, url: "http://a.test/x"},
		{name: "given no matchers, then All matches", matcher: All(), method: http.MethodGet, url: "http://a.test/x", want: true},
		{name: "given one matching, then Any matches", matcher: Any(PathIs("/y"), PathIs("/x")), method: http.MethodGet, url: "http://a.test/x", want: true},
		{name: "given no matchers, then Any does not match", matcher: Any(), method: http.MethodGet, url: "http://a.test/x"},
		{name: "given matching inner, then Not does not match", matcher: Not(PathIs("/x")), method: http.MethodGet, url: "http://a.test/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := mustRequest(t, tt.method, tt.url)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.matcher(req))
		})
	}
}

func TestMatchers_NoURL(t *testing.T) {
	t.Parallel()

	req := Request{Method: http.MethodGet}
	for name, m := range map[string]Matcher{
		"URLIs":       URLIs(""),
		"HostIs":      HostIs(""),
		"PathIs":      PathIs(""),
		"PathMatches": PathMatches(".*"),
		"QueryIs":     QueryIs("a", ""),
		"Route":       Route("", "/*"),
	} {
		assert.False(t, m(req), name)
	}
}
