// Package mockhttp intercepts outgoing HTTP requests in tests and answers
// them with registered canned responses.
//
// A Context holds three kinds of registrations, consulted in a fixed order:
//
//  1. predicate registrations (RegisterMatcher), oldest first
//  2. exact-URL registrations (RegisterURL)
//  3. the default response (SetDefaultResponse)
//
// Requests nothing matches fail with an error that satisfies
// errors.Is(err, ErrUnmocked). Every intercepted request is logged on the
// Context, matched or not.
//
// # Session mode
//
// Start with a protocol.Config puts an interceptor at the front of that
// session's handler chain. Only clients built from the session are affected:
//
//	session := protocol.NewConfig()
//	ctx := mockhttp.Start(session)
//	defer ctx.Stop()
//
//	ctx.RegisterURL(mockhttp.StringResponse("hello", http.StatusOK, nil), "http://example.com/foo")
//	resp, err := session.Client().Get("http://example.com/foo")
//
// # Global mode
//
// Start with a nil session registers the interceptor process-wide, which
// also covers http.DefaultClient. The interceptor serves the active
// Context; Start activates the new Context and Stop gives the slot back to
// the Context that was active before it:
//
//	ctx := mockhttp.Start(nil)
//	defer ctx.Stop()
//
//	ctx.SetDefaultResponse(mockhttp.NewResponse(http.StatusNotFound, nil, nil))
//	resp, err := http.Get("http://example.com/anything")
//
// Global mode swaps http.DefaultTransport, so start and stop it only from
// tests that do not call t.Parallel.
//
// # Explicit injection
//
// NewContext and NewInterceptor skip the active slot and the registry:
//
//	ctx := mockhttp.NewContext()
//	client := &http.Client{Transport: mockhttp.NewInterceptor(ctx)}
//
// # Fixtures
//
// Registrations can be loaded from YAML with LoadFixtures. See FixtureFile
// for the format.
package mockhttp
