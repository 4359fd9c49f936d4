package internal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// binder turns a request into endpoint arguments following the
// endpoint's parameter schema. It is built once per route.
type binder struct {
	defaults map[string]any
	named    []string
	query    []string
	required []string
	requests []string
	catchAll bool
}

func newBinder(e Endpoint) *binder {
	b := &binder{
		defaults: make(map[string]any),
		catchAll: e.CatchAll,
	}
	for _, p := range e.Params {
		switch p.Source {
		case SourceRequest:
			b.requests = append(b.requests, p.Name)
			continue
		case SourceQuery:
			b.query = append(b.query, p.Name)
		}
		if p.named() {
			b.named = append(b.named, p.Name)
			if p.Required {
				b.required = append(b.required, p.Name)
			} else {
				b.defaults[p.Name] = p.Default
			}
		}
	}
	return b
}

func (b *binder) parses() bool {
	return b.catchAll || len(b.named) > 0
}

func (b *binder) bind(c Context) (Args, error) {
	r := c.Request()

	var kw map[string]any
	if b.parses() {
		switch r.Method {
		case http.MethodPost:
			data, err := requestBody(c)
			if err != nil {
				return nil, err
			}
			kw = data
		case http.MethodGet:
			if r.URL.RawQuery != "" {
				kw = firstValues(r.URL.Query())
			}
		}
	}

	path := pathValues(r)
	args := make(Args, len(b.named)+len(path)+len(b.requests))
	if kw == nil {
		for k, v := range path {
			args[k] = v
		}
	} else {
		if b.catchAll {
			for k, v := range kw {
				args[k] = v
			}
		} else {
			for _, name := range b.named {
				if v, ok := kw[name]; ok {
					args[name] = v
				}
			}
		}
		if r.Method == http.MethodPost {
			q := r.URL.Query()
			for _, name := range b.query {
				if _, ok := args[name]; !ok && q.Has(name) {
					args[name] = q.Get(name)
				}
			}
		}
		for k, v := range path {
			if _, ok := args[k]; ok {
				c.LogWarn("duplicate arg name in named arg and kw args", slog.String("arg", k))
			}
			args[k] = v
		}
	}

	for _, name := range b.requests {
		args[name] = r
	}

	for _, name := range b.required {
		if _, ok := args[name]; !ok {
			return nil, ErrBadRequest("Missing argument: " + name)
		}
	}
	for name, def := range b.defaults {
		if _, ok := args[name]; !ok {
			args[name] = def
		}
	}
	return args, nil
}

// requestBody returns the body parsed by the data middleware, or parses it.
func requestBody(c Context) (map[string]any, error) {
	if data, ok := c.Get(BodyKey{}).(map[string]any); ok {
		return data, nil
	}
	return ParseBody(c.Request())
}

func pathValues(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	out := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		if k == "*" || k == "" {
			continue
		}
		out[k] = rctx.URLParams.Values[i]
	}
	return out
}
