package internal

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// Keys with special meaning in a template result mapping.
const (
	TemplateKey = "__template__"
	UserKey     = "__user__"
)

// RedirectPrefix marks a string result as a redirect target.
const RedirectPrefix = "redirect:"

// Responder is a result that writes its own response.
type Responder interface {
	Respond(c Context) error
}

// Renderer resolves a template name and its data into a component.
type Renderer interface {
	Template(name string, data map[string]any) (Component, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(name string, data map[string]any) (Component, error)

func (f RendererFunc) Template(name string, data map[string]any) (Component, error) {
	return f(name, data)
}

// ResultKey is the context key of the slot an endpoint stores its result in
// when a response stage is installed further up the chain.
type ResultKey struct{}

// Result holds an endpoint result until the response stage coerces it.
type Result struct {
	Value any
	Set   bool
}

// Store records v as the endpoint result.
func (r *Result) Store(v any) {
	r.Value = v
	r.Set = true
}

// Coerce converts an endpoint result into an HTTP response. The first
// matching rule wins:
//
//   - Responder or http.Handler: delegated
//   - []byte: application/octet-stream
//   - string with the "redirect:" prefix: 302 to the remainder
//   - other string: text/html
//   - string-keyed map without __template__: JSON
//   - string-keyed map with __template__: the template rendered with the
//     map plus __user__
//   - integer in [100, 600): bare status
//   - two-element (status, message) slice or array: status with a text body
//   - anything else: its fmt.Sprint form as text/plain
//
// Nothing is written when the response is already written. A nil result
// with nothing written becomes 204.
func Coerce(c Context, v any, renderer Renderer) error {
	if c.Written() {
		return nil
	}

	switch r := v.(type) {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case Responder:
		return r.Respond(c)
	case http.Handler:
		r.ServeHTTP(c.Response(), c.Request())
		return nil
	case []byte:
		return c.Blob(http.StatusOK, contentTypeBinary, r)
	case string:
		if target, ok := strings.CutPrefix(r, RedirectPrefix); ok {
			return c.Redirect(http.StatusFound, target)
		}
		return c.HTML(http.StatusOK, r)
	case map[string]any:
		return coerceMap(c, r, renderer)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return coerceMap(c, m, renderer)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if code, ok := statusCode(rv.Int()); ok {
			return c.NoContent(code)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() < 600 {
			if code, ok := statusCode(int64(rv.Uint())); ok {
				return c.NoContent(code)
			}
		}
	case reflect.Slice, reflect.Array:
		if rv.Len() == 2 {
			if code, ok := statusValue(rv.Index(0)); ok {
				return c.String(code, fmt.Sprint(rv.Index(1).Interface()))
			}
		}
	}

	return c.String(http.StatusOK, fmt.Sprint(v))
}

func coerceMap(c Context, m map[string]any, renderer Renderer) error {
	name, ok := m[TemplateKey]
	if !ok {
		return c.JSON(http.StatusOK, m)
	}
	if renderer == nil {
		return ErrNoRenderer
	}

	data := make(map[string]any, len(m)+1)
	for k, v := range m {
		data[k] = v
	}
	if id := c.Identity(); id != nil {
		data[UserKey] = id
	} else {
		data[UserKey] = nil
	}

	component, err := renderer.Template(fmt.Sprint(name), data)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, component)
}

func statusCode(n int64) (int, bool) {
	if n >= 100 && n < 600 {
		return int(n), true
	}
	return 0, false
}

func statusValue(v reflect.Value) (int, bool) {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return statusCode(v.Int())
	default:
		return 0, false
	}
}
