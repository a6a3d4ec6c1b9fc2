package mockhttp

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Request describes an intercepted request. It is what matchers see and
// what the request log stores.
type Request struct {
	Method string

	// URL is nil when the request carried no URL.
	URL *url.URL

	Header http.Header

	// Body holds the request payload, if any.
	Body []byte
}

// NewRequest snapshots req into a Request.
//
// The body is read through req.GetBody when available. Otherwise req.Body is
// drained and replaced with an equivalent in-memory reader, so the request
// can still be sent afterwards. A body that fails to read is an error; the
// partial payload is not kept.
func NewRequest(req *http.Request) (Request, error) {
	d := Request{
		Method: req.Method,
		Header: req.Header.Clone(),
	}
	if d.Method == "" {
		d.Method = http.MethodGet
	}
	if req.URL != nil {
		u := *req.URL
		d.URL = &u
	}

	switch {
	case req.GetBody != nil:
		rc, err := req.GetBody()
		if err != nil {
			return Request{}, fmt.Errorf("failed to get request body: %w", err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return Request{}, fmt.Errorf("failed to read request body: %w", err)
		}
		d.Body = data
	case req.Body != nil && req.Body != http.NoBody:
		data, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return Request{}, fmt.Errorf("failed to read request body: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(data))
		d.Body = data
	}

	return d, nil
}

// URLString returns the URL as a registry key, or "" when there is none.
func (r Request) URLString() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.String()
}

// Equal reports whether r and other describe the same request: same method,
// URL, headers, and body.
func (r Request) Equal(other Request) bool {
	return r.Method == other.Method &&
		r.URLString() == other.URLString() &&
		(r.URL == nil) == (other.URL == nil) &&
		headerEqual(r.Header, other.Header) &&
		bytes.Equal(r.Body, other.Body)
}

// String returns "METHOD URL".
func (r Request) String() string {
	return r.Method + " " + r.URLString()
}

// Curl returns a cURL command that reproduces the request. Every argument
// is single-quoted for a POSIX shell.
//
// Example output:
//
//	curl -X POST 'https://api.example.com/users' -H 'Content-Type: application/json' --data-raw '{"name":"John"}'
func (r Request) Curl() string {
	var b strings.Builder
	b.WriteString("curl")

	if r.Method != http.MethodGet {
		b.WriteString(" -X ")
		b.WriteString(r.Method)
	}
	b.WriteByte(' ')
	b.WriteString(shellQuote(r.URLString()))

	for _, k := range slices.Sorted(maps.Keys(r.Header)) {
		for _, v := range r.Header[k] {
			b.WriteString(" -H ")
			b.WriteString(shellQuote(k + ": " + v))
		}
	}

	if len(r.Body) > 0 {
		b.WriteString(" --data-raw ")
		b.WriteString(shellQuote(string(r.Body)))
	}

	return b.String()
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func headerEqual(a, b http.Header) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !slices.Equal(av, bv) {
			return false
		}
	}
	return true
}
