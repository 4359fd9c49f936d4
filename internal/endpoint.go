package internal

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Source tells the binder where a parameter value comes from.
type Source int

const (
	// SourcePath takes the value from a route variable such as {id}.
	SourcePath Source = iota
	// SourceQuery takes the value from the query string. On POST the
	// request body is consulted first.
	SourceQuery
	// SourceBody takes the value from the JSON or form body. On GET the
	// query string is used.
	SourceBody
	// SourceRequest passes the *http.Request itself.
	SourceRequest
)

func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceQuery:
		return "query"
	case SourceBody:
		return "body"
	case SourceRequest:
		return "request"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Param declares one argument of an endpoint function.
type Param struct {
	Default  any
	Name     string
	Source   Source
	Required bool
}

// named reports whether the value is looked up in the parsed request data.
func (p Param) named() bool {
	return p.Source == SourceQuery || p.Source == SourceBody
}

// ParamOption configures a Param.
type ParamOption func(*Param)

// Required marks the parameter as mandatory. Named parameters are
// required unless Optional is given.
func Required() ParamOption {
	return func(p *Param) {
		p.Required = true
		p.Default = nil
	}
}

// Optional makes the parameter optional with the given default.
func Optional(def any) ParamOption {
	return func(p *Param) {
		p.Required = false
		p.Default = def
	}
}

// PathParam declares a route variable. Path parameters are always present.
func PathParam(name string) Param {
	return Param{Name: name, Source: SourcePath, Required: true}
}

// QueryParam declares a query string parameter.
func QueryParam(name string, opts ...ParamOption) Param {
	return newParam(name, SourceQuery, opts)
}

// BodyParam declares a body parameter.
func BodyParam(name string, opts ...ParamOption) Param {
	return newParam(name, SourceBody, opts)
}

// RequestArg declares an argument that receives the *http.Request.
func RequestArg(name string) Param {
	return Param{Name: name, Source: SourceRequest}
}

func newParam(name string, src Source, opts []ParamOption) Param {
	p := Param{Name: name, Source: src, Required: true}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// EndpointFunc is a business function bound to a route. Its result is
// coerced into a response; see Coerce for the accepted shapes.
type EndpointFunc func(c Context, args Args) (any, error)

// Endpoint is a route declaration with an explicit parameter schema.
type Endpoint struct {
	Func     EndpointFunc
	Method   string
	Path     string
	Params   []Param
	CatchAll bool
}

// GET declares a GET endpoint.
//
// Example:
//
//	awesome.GET("/api/blogs/{id}", h.getBlog, awesome.PathParam("id"))
func GET(path string, fn EndpointFunc, params ...Param) Endpoint {
	return Endpoint{Method: http.MethodGet, Path: path, Func: fn, Params: params}
}

// POST declares a POST endpoint.
func POST(path string, fn EndpointFunc, params ...Param) Endpoint {
	return Endpoint{Method: http.MethodPost, Path: path, Func: fn, Params: params}
}

// WithCatchAll returns a copy of the endpoint that receives every parsed
// request value, not only the declared ones.
func (e Endpoint) WithCatchAll() Endpoint {
	e.CatchAll = true
	return e
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

var routeVar = regexp.MustCompile(`\{([^}:]+)(?::[^}]*)?\}`)

// validate checks the declaration once, at registration.
func (e Endpoint) validate() error {
	if e.Func == nil {
		return fmt.Errorf("%w: %s: nil function", ErrInvalidEndpoint, e)
	}
	if e.Method == "" || !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("%w: %q: method and absolute path are required", ErrInvalidEndpoint, e.String())
	}

	vars := make(map[string]bool)
	for _, m := range routeVar.FindAllStringSubmatch(e.Path, -1) {
		vars[m[1]] = true
	}

	seen := make(map[string]bool, len(e.Params))
	requestSeen := false
	for _, p := range e.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: %s: empty parameter name", ErrInvalidEndpoint, e)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %s: duplicated parameter %q", ErrInvalidEndpoint, e, p.Name)
		}
		seen[p.Name] = true

		switch p.Source {
		case SourcePath:
			if requestSeen {
				return fmt.Errorf("%w: %s", ErrRequestNotLast, e)
			}
			if !vars[p.Name] {
				return fmt.Errorf("%w: %s: path parameter %q not in route", ErrInvalidEndpoint, e, p.Name)
			}
		case SourceRequest:
			requestSeen = true
		case SourceQuery, SourceBody:
		default:
			return fmt.Errorf("%w: %s: unknown source for %q", ErrInvalidEndpoint, e, p.Name)
		}
	}
	return nil
}
