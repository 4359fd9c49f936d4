package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const maxMultipartMemory = 32 << 20

// Args holds the bound arguments of an endpoint call keyed by parameter name.
type Args map[string]any

// Has reports whether the argument is present.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the argument as a string. Non-string values are formatted.
func (a Args) String(name string) string {
	switch v := a[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the argument as an int, or def when it is absent or not a number.
func (a Args) Int(name string, def int) int {
	switch v := a[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, ok := convertParam[int](strings.TrimSpace(v)); ok {
			return n
		}
	}
	return def
}

// Bool returns the argument as a bool. Form values "on", "1" and "true" are true.
func (a Args) Bool(name string) bool {
	switch v := a[name].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		if v == "on" {
			return true
		}
		b, _ := convertParam[bool](v)
		return b
	}
	return false
}

// Request returns the *http.Request bound to a SourceRequest parameter.
func (a Args) Request(name string) *http.Request {
	r, _ := a[name].(*http.Request)
	return r
}

// IsJSON reports whether the content type denotes a JSON body.
func IsJSON(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "application/json")
}

// IsForm reports whether the content type denotes an urlencoded or multipart form.
func IsForm(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}

// ParseBody decodes a JSON object or form body into a flat map.
// Form fields keep their first value. Errors are 400 HTTPErrors carrying
// the client-facing message.
func ParseBody(r *http.Request) (map[string]any, error) {
	ct := r.Header.Get("Content-Type")
	switch {
	case ct == "":
		return nil, ErrBadRequest("Missing Content-Type.")
	case IsJSON(ct):
		return parseJSON(r.Body)
	case IsForm(ct):
		return parseForm(r)
	default:
		return nil, ErrBadRequest("Unsupported Content-Type: " + ct)
	}
}

func parseJSON(body io.Reader) (map[string]any, error) {
	var v any
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrBadRequest("JSON body must be object.", WithError(err))
		}
		return nil, ErrBadRequest("Invalid JSON body.", WithError(err))
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrBadRequest("JSON body must be object.")
	}
	return obj, nil
}

func parseForm(r *http.Request) (map[string]any, error) {
	var values url.Values
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, ErrBadRequest("Invalid form body.", WithError(err))
		}
		values = r.MultipartForm.Value
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, ErrBadRequest("Invalid form body.", WithError(err))
		}
		values = r.PostForm
	}
	return firstValues(values), nil
}

// firstValues flattens multi-valued data. Blank values are kept.
func firstValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
