package mockhttp

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FixtureFile is the YAML document accepted by LoadFixtures.
//
//	default:
//	  status: 404
//	fixtures:
//	  - url: http://example.com/foo
//	    status: 200
//	    headers: {foo: bar}
//	    body: hello
//	  - method: PUT
//	    path: /items/{id}
//	    status: 204
//	  - url: http://example.com/down
//	    error: connection refused
type FixtureFile struct {
	Default  *Fixture  `yaml:"default,omitempty"`
	Fixtures []Fixture `yaml:"fixtures"`
}

// Fixture is one canned response.
//
// An entry with only a url becomes an exact-URL registration. An entry with
// a method and/or a path (a chi route pattern) becomes a predicate
// registration; a url given alongside them narrows the match further.
type Fixture struct {
	URL    string `yaml:"url,omitempty"`
	Method string `yaml:"method,omitempty"`
	Path   string `yaml:"path,omitempty"`

	Status  int               `yaml:"status,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`

	// Body and JSON are mutually exclusive.
	Body *string `yaml:"body,omitempty"`
	JSON any     `yaml:"json,omitempty"`

	// Error makes the request fail with this message.
	Error string `yaml:"error,omitempty"`
}

// LoadFixtures reads a fixture file and registers its entries on ctx in
// document order.
func LoadFixtures(ctx *Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture file: %w", err)
	}
	return ParseFixtures(ctx, data)
}

// ParseFixtures parses a YAML fixture document and registers its entries on
// ctx in document order. Nothing is registered if any entry is invalid.
func ParseFixtures(ctx *Context, data []byte) error {
	var file FixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	if err := validateFixtures(&file); err != nil {
		return fmt.Errorf("invalid fixtures: %w", err)
	}

	var defaultResp *Response
	if file.Default != nil {
		resp, err := file.Default.response()
		if err != nil {
			return fmt.Errorf("default: %w", err)
		}
		defaultResp = resp
	}

	type registration struct {
		fixture  Fixture
		response *Response
	}
	regs := make([]registration, 0, len(file.Fixtures))
	for i, f := range file.Fixtures {
		resp, err := f.response()
		if err != nil {
			return fmt.Errorf("fixtures[%d]: %w", i, err)
		}
		regs = append(regs, registration{fixture: f, response: resp})
	}

	for _, r := range regs {
		if m := r.fixture.matcher(); m != nil {
			ctx.RegisterMatcher(r.response, m)
		} else {
			ctx.RegisterURL(r.response, r.fixture.URL)
		}
	}
	if defaultResp != nil {
		ctx.SetDefaultResponse(defaultResp)
	}

	return nil
}

func validateFixtures(file *FixtureFile) error {
	if file.Default != nil {
		d := file.Default
		if d.URL != "" || d.Method != "" || d.Path != "" {
			return errors.New("default: url, method and path are not allowed")
		}
		if err := validateResponse(d); err != nil {
			return fmt.Errorf("default: %w", err)
		}
	}

	for i := range file.Fixtures {
		f := &file.Fixtures[i]
		if f.URL == "" && f.Method == "" && f.Path == "" {
			return fmt.Errorf("fixtures[%d]: one of url, method or path is required", i)
		}
		if f.Path != "" && f.Path[0] != '/' {
			return fmt.Errorf("fixtures[%d]: path must start with '/': %q", i, f.Path)
		}
		if err := validateResponse(f); err != nil {
			return fmt.Errorf("fixtures[%d]: %w", i, err)
		}
	}

	return nil
}

func validateResponse(f *Fixture) error {
	if f.Error == "" && f.Status == 0 {
		return errors.New("status is required")
	}
	if f.Status != 0 && (f.Status < 100 || f.Status > 999) {
		return fmt.Errorf("invalid status %d", f.Status)
	}
	if f.Body != nil && f.JSON != nil {
		return errors.New("body and json are mutually exclusive")
	}
	return nil
}

// response builds the Response described by f.
func (f Fixture) response() (*Response, error) {
	if f.Error != "" {
		return ErrorResponse(errors.New(f.Error), f.Status, f.Headers), nil
	}

	switch {
	case f.Body != nil:
		return StringResponse(*f.Body, f.Status, f.Headers), nil
	case f.JSON != nil:
		body, err := json.Marshal(f.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return NewResponse(f.Status, f.Headers, body), nil
	default:
		return NewResponse(f.Status, f.Headers, nil), nil
	}
}

// matcher returns the predicate for f, or nil for an exact-URL entry.
func (f Fixture) matcher() Matcher {
	if f.Method == "" && f.Path == "" {
		return nil
	}

	var ms []Matcher
	switch {
	case f.Path != "":
		ms = append(ms, Route(f.Method, f.Path))
	default:
		ms = append(ms, MethodIs(f.Method))
	}
	if f.URL != "" {
		ms = append(ms, URLIs(f.URL))
	}
	return All(ms...)
}
