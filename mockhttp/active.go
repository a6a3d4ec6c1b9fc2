package mockhttp

import (
	"sync/atomic"
)

// active is the process-wide Context used by interceptors that are not
// bound to a specific Context (global mode). At most one Context is active.
var active atomic.Pointer[Context]

// Activate makes c the active Context and returns the one it replaced.
func Activate(c *Context) *Context {
	return active.Swap(c)
}

// Deactivate clears the active Context and returns it.
func Deactivate() *Context {
	return active.Swap(nil)
}

// Active returns the active Context, or nil.
func Active() *Context {
	return active.Load()
}

// restoreActive puts prev back in the active slot only if it still holds c.
func restoreActive(c, prev *Context) bool {
	return active.CompareAndSwap(c, prev)
}
