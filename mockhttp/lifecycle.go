package mockhttp

import (
	"github.com/kroma-labs/mockhttp/protocol"
)

// Start creates a Context, installs an interceptor for it, and makes it the
// active Context.
//
// With a non-nil session the interceptor is bound to the new Context and
// prepended to the session's handler chain, so it runs before every other
// handler of that session. With a nil session the interceptor goes into the
// process-wide protocol registry instead; that interceptor serves whichever
// Context is active at request time, and http.DefaultClient is covered.
//
// Global mode replaces http.DefaultTransport, which net/http reads without
// a lock. Start(nil) and the matching Stop must not overlap tests running in
// parallel that send requests through the default client.
//
// Example:
//
//	session := protocol.NewConfig()
//	ctx := mockhttp.Start(session)
//	defer ctx.Stop()
//
//	ctx.RegisterURL(mockhttp.StringResponse("hello", 200, nil), "http://example.com/foo")
//	resp, err := session.Client().Get("http://example.com/foo")
func Start(session *protocol.Config, opts ...Option) *Context {
	c := NewContext(opts...)
	c.install(session)

	prev := Activate(c)
	c.mu.Lock()
	c.prevActive = prev
	c.mu.Unlock()

	return c
}

func (c *Context) install(session *protocol.Config) {
	var ic *Interceptor
	if session != nil {
		ic = NewInterceptor(c)
		session.Prepend(ic)
	} else {
		ic = newInterceptor(nil, c.cfg.Schemes)
		protocol.Register(ic)
	}

	c.mu.Lock()
	c.session = session
	c.interceptor = ic
	c.installed = true
	c.mu.Unlock()

	c.cfg.Logger.Debug().
		Str("context_id", c.id).
		Str("context", c.cfg.Name).
		Bool("global", session == nil).
		Msg("mock interceptor installed")
}

// Stop uninstalls the interceptor from the chain Start put it in and clears
// the default response. If c is the active Context, the Context it displaced
// becomes active again; if that one was stopped in the meantime, the nearest
// Context it displaced that is still installed takes its place.
//
// Registrations and the request log are kept for inspection. Calling Stop
// more than once, or on a Context Start did not create, does nothing.
func (c *Context) Stop() {
	c.mu.Lock()
	if !c.installed {
		c.mu.Unlock()
		return
	}
	session, ic, prev := c.session, c.interceptor, c.prevActive
	c.installed = false
	c.session = nil
	c.interceptor = nil
	c.defaultResp = nil
	c.mu.Unlock()

	if session != nil {
		session.Remove(ic)
	} else {
		protocol.Unregister(ic)
	}
	restoreActive(c, installedAncestor(prev))

	c.cfg.Logger.Debug().
		Str("context_id", c.id).
		Str("context", c.cfg.Name).
		Msg("mock interceptor uninstalled")
}

// Installed reports whether c currently has an interceptor installed.
func (c *Context) Installed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.installed
}

// installedAncestor follows the chain of displaced Contexts from prev and
// returns the first one still installed, or nil.
func installedAncestor(prev *Context) *Context {
	for prev != nil {
		prev.mu.Lock()
		installed, next := prev.installed, prev.prevActive
		prev.mu.Unlock()

		if installed {
			return prev
		}
		prev = next
	}
	return nil
}
