package mockhttp

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Matcher selects requests for a predicate registration.
// Matchers run without the Context lock held and may call back into it.
type Matcher func(req Request) bool

// MethodIs matches requests with the given method.
func MethodIs(method string) Matcher {
	return func(req Request) bool {
		return req.Method == method
	}
}

// URLIs matches requests whose full URL string equals rawURL.
func URLIs(rawURL string) Matcher {
	return func(req Request) bool {
		return req.URL != nil && req.URL.String() == rawURL
	}
}

// HostIs matches requests sent to host (as in URL.Host, including any port).
func HostIs(host string) Matcher {
	return func(req Request) bool {
		return req.URL != nil && req.URL.Host == host
	}
}

// PathIs matches requests whose URL path equals path.
func PathIs(path string) Matcher {
	return func(req Request) bool {
		return req.URL != nil && req.URL.Path == path
	}
}

// PathMatches matches requests whose URL path matches the regular
// expression. It panics if pattern does not compile.
func PathMatches(pattern string) Matcher {
	re := regexp.MustCompile(pattern)
	return func(req Request) bool {
		return req.URL != nil && re.MatchString(req.URL.Path)
	}
}

// HeaderIs matches requests carrying header key with the given value.
func HeaderIs(key, value string) Matcher {
	return func(req Request) bool {
		return req.Header.Get(key) == value
	}
}

// QueryIs matches requests whose query parameter key equals value.
func QueryIs(key, value string) Matcher {
	return func(req Request) bool {
		return req.URL != nil && req.URL.Query().Get(key) == value
	}
}

// Route matches requests against a chi route pattern such as
// "/users/{id}" or "/files/*". An empty method matches any standard method.
//
// Route panics if the pattern does not begin with "/" or the method is not
// one chi knows.
//
// Example:
//
//	ctx.RegisterMatcher(userResp, mockhttp.Route(http.MethodGet, "/users/{id}"))
func Route(method, pattern string) Matcher {
	mux := chi.NewMux()
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	if method == "" {
		mux.Handle(pattern, noop)
	} else {
		mux.Method(strings.ToUpper(method), pattern, noop)
	}

	return func(req Request) bool {
		if req.URL == nil {
			return false
		}
		return mux.Match(chi.NewRouteContext(), req.Method, req.URL.Path)
	}
}

// All matches when every matcher matches. All() matches everything.
func All(ms ...Matcher) Matcher {
	return func(req Request) bool {
		for _, m := range ms {
			if !m(req) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one matcher matches. Any() matches nothing.
func Any(ms ...Matcher) Matcher {
	return func(req Request) bool {
		for _, m := range ms {
			if m(req) {
				return true
			}
		}
		return false
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(req Request) bool {
		return !m(req)
	}
}
