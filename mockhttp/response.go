package mockhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// Response is a canned HTTP response.
//
// A Response is treated as immutable once registered: the registry stores
// the pointer, and the same instance may back several registrations.
type Response struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Headers are copied into the native response exactly as stored.
	// Keys are not canonicalized.
	Headers map[string]string

	// Body is the payload. Nil means no body, which is distinct from an
	// empty body.
	Body []byte

	// Err, when set, is returned as the round-trip error instead of
	// delivering the response.
	Err error
}

// NewResponse creates a Response with a raw body.
func NewResponse(statusCode int, headers map[string]string, body []byte) *Response {
	return &Response{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       body,
	}
}

// StringResponse creates a Response whose body is s encoded as UTF-8.
//
// Example:
//
//	resp := mockhttp.StringResponse("hello", http.StatusOK, map[string]string{"foo": "bar"})
func StringResponse(s string, statusCode int, headers map[string]string) *Response {
	return NewResponse(statusCode, headers, []byte(s))
}

// JSONResponse creates a Response whose body is the JSON encoding of v.
// No Content-Type header is added; pass one in headers if the code under
// test needs it.
func JSONResponse(v any, statusCode int, headers map[string]string) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mockhttp: encode JSON body: %w", err)
	}
	return NewResponse(statusCode, headers, body), nil
}

// MustJSONResponse is like JSONResponse but panics if v cannot be encoded.
// Intended for test setup with literal values.
func MustJSONResponse(v any, statusCode int, headers map[string]string) *Response {
	resp, err := JSONResponse(v, statusCode, headers)
	if err != nil {
		panic(err)
	}
	return resp
}

// ErrorResponse creates a Response that fails the request with err.
func ErrorResponse(err error, statusCode int, headers map[string]string) *Response {
	return &Response{
		StatusCode: statusCode,
		Headers:    headers,
		Err:        err,
	}
}

// toHTTP builds the native response delivered for req.
func (r *Response) toHTTP(req *http.Request) *http.Response {
	header := make(http.Header, len(r.Headers))
	for k, v := range r.Headers {
		// Direct assignment keeps the key's case as registered.
		header[k] = []string{v}
	}

	var body io.ReadCloser = http.NoBody
	if r.Body != nil {
		body = io.NopCloser(bytes.NewReader(r.Body))
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode)),
		StatusCode:    r.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          body,
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}
