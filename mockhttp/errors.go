package mockhttp

import (
	"errors"
	"fmt"
)

const (
	// ErrorDomain identifies failures raised by the interceptor, as opposed
	// to failures of a real transport.
	ErrorDomain = "MockHTTP"

	// ErrorCodeUnmocked is the code of an UnmockedError.
	ErrorCodeUnmocked = 1
)

// ErrUnmocked is matched by errors.Is for every request that had no
// registered response and no default.
var ErrUnmocked = errors.New("mockhttp: request not registered")

// UnmockedError reports a request for which nothing was registered.
//
// The error reaches the caller wrapped by http.Client in a *url.Error;
// use errors.As or errors.Is(err, ErrUnmocked) to detect it.
type UnmockedError struct {
	Method string
	URL    string
}

func newUnmockedError(req Request) *UnmockedError {
	return &UnmockedError{
		Method: req.Method,
		URL:    req.URLString(),
	}
}

// Error implements error.
func (e *UnmockedError) Error() string {
	return fmt.Sprintf("mockhttp: request for URL: %s not registered", e.URL)
}

// Is reports whether target is ErrUnmocked.
func (e *UnmockedError) Is(target error) bool {
	return target == ErrUnmocked
}

// Domain returns ErrorDomain.
func (e *UnmockedError) Domain() string {
	return ErrorDomain
}

// Code returns ErrorCodeUnmocked.
func (e *UnmockedError) Code() int {
	return ErrorCodeUnmocked
}

// IsUnmocked reports whether err, or any error it wraps, is an
// unmocked-request failure.
func IsUnmocked(err error) bool {
	return errors.Is(err, ErrUnmocked)
}
