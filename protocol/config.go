package protocol

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Compile-time interface check.
var _ http.RoundTripper = (*Config)(nil)

// Config is a session configuration: an ordered chain of protocol handlers
// in front of a base transport.
//
// Config is itself an http.RoundTripper. Use Client() to obtain an
// *http.Client bound to it. All methods are safe for concurrent use.
type Config struct {
	mu       sync.RWMutex
	handlers []Handler

	// base is the transport used when no handler accepts a request.
	// Nil means the process-wide default transport.
	base http.RoundTripper

	// timeout is applied to clients created by Client().
	timeout time.Duration

	logger zerolog.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithBase sets the transport used when no handler accepts a request.
//
// Example:
//
//	cfg := protocol.NewConfig(
//	    protocol.WithBase(&http.Transport{DisableKeepAlives: true}),
//	)
func WithBase(rt http.RoundTripper) Option {
	return func(c *Config) {
		c.base = rt
	}
}

// WithTimeout sets the request timeout of clients created by Client().
// Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for routing decisions (debug level).
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithHandlers seeds the chain with handlers, in order.
func WithHandlers(hs ...Handler) Option {
	return func(c *Config) {
		c.handlers = append(c.handlers, hs...)
	}
}

// NewConfig creates a session configuration with an empty handler chain.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prepend inserts h at the front of the chain so it is tried before every
// handler already present.
func (c *Config) Prepend(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	chain := make([]Handler, 0, len(c.handlers)+1)
	chain = append(chain, h)
	c.handlers = append(chain, c.handlers...)
}

// Append adds h at the end of the chain.
func (c *Config) Append(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
}

// Remove drops the first occurrence of h from the chain and reports whether
// it was present. Other handlers keep their order.
func (c *Config) Remove(h Handler) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed bool
	c.handlers, removed = without(c.handlers, h)
	return removed
}

// Handlers returns a copy of the chain in evaluation order.
func (c *Config) Handlers() []Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Handler{}, c.handlers...)
}

// Client returns an *http.Client that sends every request through c.
func (c *Config) Client() *http.Client {
	return &http.Client{
		Transport: c,
		Timeout:   c.timeout,
	}
}

// RoundTrip implements http.RoundTripper.
//
// The session chain is consulted first, then the process-wide registry,
// then the base transport.
func (c *Config) RoundTrip(req *http.Request) (*http.Response, error) {
	c.mu.RLock()
	h := firstHandler(c.handlers, req)
	base := c.base
	c.mu.RUnlock()

	if h != nil {
		c.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("source", "session").
			Msg("request routed to protocol handler")
		return h.RoundTrip(req)
	}

	if h := global.handlerFor(req); h != nil {
		c.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("source", "registry").
			Msg("request routed to protocol handler")
		return h.RoundTrip(req)
	}

	if base == nil {
		base = global.base()
	}
	return base.RoundTrip(req)
}
