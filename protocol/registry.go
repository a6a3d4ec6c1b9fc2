package protocol

import (
	"net/http"
	"sync"
)

// registry is the process-wide handler list.
type registry struct {
	mu       sync.RWMutex
	handlers []Handler

	// saved holds http.DefaultTransport as it was before the registry took
	// it over. Nil while the registry is empty.
	saved http.RoundTripper
}

var global = &registry{}

// registryTransport routes requests through the process-wide registry.
type registryTransport struct{}

// RoundTrip implements http.RoundTripper.
func (registryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if h := global.handlerFor(req); h != nil {
		return h.RoundTrip(req)
	}
	return global.base().RoundTrip(req)
}

// Register adds h to the front of the process-wide registry.
// Handlers registered later are consulted first.
//
// The first registration installs the registry as http.DefaultTransport;
// Unregister restores the previous transport once the registry is empty.
//
// The swap writes http.DefaultTransport, which net/http reads without a
// lock. Call Register only while no other goroutine is using the default
// client or transport.
func Register(h Handler) {
	global.mu.Lock()
	defer global.mu.Unlock()

	chain := make([]Handler, 0, len(global.handlers)+1)
	chain = append(chain, h)
	global.handlers = append(chain, global.handlers...)

	if global.saved == nil {
		global.saved = http.DefaultTransport
		http.DefaultTransport = registryTransport{}
	}
}

// Unregister removes h from the process-wide registry and reports whether
// it was registered. The same caveat as Register applies to the transport
// restore.
func Unregister(h Handler) bool {
	global.mu.Lock()
	defer global.mu.Unlock()

	var removed bool
	global.handlers, removed = without(global.handlers, h)

	if len(global.handlers) == 0 && global.saved != nil {
		http.DefaultTransport = global.saved
		global.saved = nil
	}
	return removed
}

// Registered returns a copy of the process-wide registry in evaluation order.
func Registered() []Handler {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return append([]Handler{}, global.handlers...)
}

// Transport returns an http.RoundTripper that consults the process-wide
// registry before falling back to the original default transport.
func Transport() http.RoundTripper {
	return registryTransport{}
}

func (r *registry) handlerFor(req *http.Request) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return firstHandler(r.handlers, req)
}

// base returns the transport to use when no registered handler applies.
func (r *registry) base() http.RoundTripper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.saved != nil {
		return r.saved
	}
	return http.DefaultTransport
}
