package mockhttp

// stage is one tier of response resolution. It returns nil when it has
// nothing for the request.
type stage func(req Request) *Response

// matcherEntry is a predicate registration.
type matcherEntry struct {
	match    Matcher
	response *Response
}

// matcherStage tests entries in registration order; the earliest match wins.
func matcherStage(entries []matcherEntry) stage {
	return func(req Request) *Response {
		for _, e := range entries {
			if e.match(req) {
				return e.response
			}
		}
		return nil
	}
}

// fixedStage always yields resp, which may be nil.
func fixedStage(resp *Response) stage {
	return func(Request) *Response {
		return resp
	}
}

// resolve runs stages in order and returns the first response produced.
func resolve(stages []stage, req Request) *Response {
	for _, s := range stages {
		if resp := s(req); resp != nil {
			return resp
		}
	}
	return nil
}
