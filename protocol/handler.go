package protocol

import (
	"net/http"
)

// Handler is a protocol handler that can serve a request in place of the
// network transport.
//
// Handlers are compared by identity when removed from a chain, so
// implementations should be pointer types.
type Handler interface {
	http.RoundTripper

	// CanHandle reports whether the handler wants to serve req.
	CanHandle(req *http.Request) bool
}

// firstHandler returns the first handler in chain that accepts req, or nil.
func firstHandler(chain []Handler, req *http.Request) Handler {
	for _, h := range chain {
		if h.CanHandle(req) {
			return h
		}
	}
	return nil
}

// without returns a copy of chain with the first occurrence of h removed.
// The relative order of the remaining handlers is preserved.
func without(chain []Handler, h Handler) ([]Handler, bool) {
	for i, candidate := range chain {
		if candidate == h {
			out := make([]Handler, 0, len(chain)-1)
			out = append(out, chain[:i]...)
			out = append(out, chain[i+1:]...)
			return out, true
		}
	}
	return chain, false
}
