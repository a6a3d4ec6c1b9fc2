// Package protocol provides the handler-chain extension point that lets a
// protocol handler take over outgoing HTTP requests before they reach the
// network.
//
// A Handler decides per request whether it wants it (CanHandle) and, if so,
// produces the response itself (RoundTrip). Handlers live in one of two
// places:
//
//   - A Config, which models a single session configuration. Its chain is
//     ordered and consulted first to last.
//   - The process-wide registry (Register/Unregister), consulted after the
//     Config chain. While the registry is non-empty, http.DefaultTransport is
//     routed through it so that http.DefaultClient is covered as well.
//
// # Quick Start
//
//	cfg := protocol.NewConfig(
//	    protocol.WithTimeout(5 * time.Second),
//	)
//	cfg.Prepend(myHandler)
//
//	client := cfg.Client()
//	resp, err := client.Get("http://example.com/foo")
//
// Requests no handler accepts fall through to the base transport
// (http.DefaultTransport unless WithBase is used).
//
// # Concurrency
//
// Config and the registry are safe for concurrent use. The
// http.DefaultTransport swap done by Register and Unregister is not: net/http
// reads that variable without synchronization. Register and unregister
// global handlers only while no other goroutine sends requests through
// http.DefaultClient or http.DefaultTransport, and in tests keep them out of
// t.Parallel tests.
package protocol
