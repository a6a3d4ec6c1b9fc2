package mockhttp

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kroma-labs/mockhttp/protocol"
)

// Context is a mocking registry: registered responses, the default
// response, and the log of intercepted requests.
//
// Each Context is an isolated mocking universe. All methods are safe for
// concurrent use; none of them fail. A request with no match is reported by
// a nil *Response, never by an error or a panic.
//
// Resolution order is fixed: predicate registrations (oldest first), then the
// exact-URL registration, then the default response.
type Context struct {
	id  string
	cfg *config

	// mu guards every field below. Exported methods lock it once; helpers
	// with a Locked suffix expect it held.
	mu          sync.Mutex
	byURL       map[string]*Response
	matchers    []matcherEntry
	defaultResp *Response
	requests    []Request

	// Lifecycle state, see Start and Stop.
	session     *protocol.Config
	interceptor *Interceptor
	installed   bool

	// prevActive is the Context Start displaced from the active slot.
	prevActive *Context
}

// NewContext creates an empty Context that is not installed anywhere.
// Use it with NewInterceptor for explicit injection, or use Start.
func NewContext(opts ...Option) *Context {
	return &Context{
		id:    uuid.New().String(),
		cfg:   newConfig(opts...),
		byURL: make(map[string]*Response),
	}
}

// ID returns the identifier generated for this Context.
func (c *Context) ID() string {
	return c.id
}

// RegisterURL makes resp the response for rawURL, replacing any earlier
// registration for the same URL. The URL is compared as an exact string.
func (c *Context) RegisterURL(resp *Response, rawURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byURL[rawURL] = resp
}

// RegisterMatcher appends a predicate registration. It is tried after every
// predicate registered before it, and before any exact-URL registration.
func (c *Context) RegisterMatcher(resp *Response, m Matcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matchers = append(c.matchers, matcherEntry{match: m, response: resp})
}

// SetDefaultResponse sets the fallback response. Nil clears it.
func (c *Context) SetDefaultResponse(resp *Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultResp = resp
}

// ClearDefaultResponse removes the fallback response.
func (c *Context) ClearDefaultResponse() {
	c.SetDefaultResponse(nil)
}

// RecordRequest appends req to the request log.
func (c *Context) RecordRequest(req Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
}

// RemoveRequest removes the oldest logged request equal to req.
// It does nothing if there is none.
func (c *Context) RemoveRequest(req Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, logged := range c.requests {
		if logged.Equal(req) {
			c.requests = append(c.requests[:i:i], c.requests[i+1:]...)
			return
		}
	}
}

// ResolveURL returns the response registered for rawURL, else the default
// response, else nil.
func (c *Context) ResolveURL(rawURL string) *Response {
	c.mu.Lock()
	stages := c.urlStagesLocked(rawURL)
	c.mu.Unlock()

	return resolve(stages, Request{})
}

// ResolveRequest returns the response for req: the first matching predicate
// registration, else (if req has a URL) what ResolveURL returns for it,
// else nil.
//
// Matchers are evaluated on a snapshot taken under the lock, so they see
// the registry as it was when resolution started.
func (c *Context) ResolveRequest(req Request) *Response {
	c.mu.Lock()
	stages := []stage{matcherStage(c.matchers[:len(c.matchers):len(c.matchers)])}
	if req.URL != nil {
		stages = append(stages, c.urlStagesLocked(req.URL.String())...)
	}
	c.mu.Unlock()

	return resolve(stages, req)
}

// urlStagesLocked returns the exact-URL and default tiers for key.
func (c *Context) urlStagesLocked(key string) []stage {
	return []stage{
		fixedStage(c.byURL[key]),
		fixedStage(c.defaultResp),
	}
}

// Requests returns a copy of the request log, oldest first.
func (c *Context) Requests() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Request{}, c.requests...)
}

// RequestCount returns the number of logged requests.
func (c *Context) RequestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// LastRequest returns the most recently logged request.
func (c *Context) LastRequest() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return Request{}, false
	}
	return c.requests[len(c.requests)-1], true
}

// Reset drops all registrations, the default response, and the request log.
// Installation state is left alone.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byURL = make(map[string]*Response)
	c.matchers = nil
	c.defaultResp = nil
	c.requests = nil
}

// stats is a point-in-time view of registry sizes.
type stats struct {
	urls       int
	matchers   int
	requests   int
	defaultSet bool
}

func (c *Context) stats() stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return stats{
		urls:       len(c.byURL),
		matchers:   len(c.matchers),
		requests:   len(c.requests),
		defaultSet: c.defaultResp != nil,
	}
}
