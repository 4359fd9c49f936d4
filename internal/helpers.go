package internal

import "strconv"

// Scalar is the set of types route and query values convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the value stored under key, or the zero value of T
// when it is missing or of another type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// PathValue converts a route variable to T. Unparsable values yield zero.
func PathValue[T Scalar](c Context, name string) T {
	v, _ := convertParam[T](c.Param(name))
	return v
}

// QueryValue converts a query parameter to T. Unparsable values yield zero.
func QueryValue[T Scalar](c Context, name string) T {
	v, _ := convertParam[T](c.Query(name))
	return v
}

// QueryValueOr is QueryValue with a fallback for empty or unparsable values.
func QueryValueOr[T Scalar](c Context, name string, fallback T) T {
	if raw := c.Query(name); raw != "" {
		if v, ok := convertParam[T](raw); ok {
			return v
		}
	}
	return fallback
}

func convertParam[T Scalar](raw string) (T, bool) {
	var out T
	var (
		v   any
		err error
	)
	switch any(out).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return out, false
	}
	if err != nil {
		return out, false
	}
	return v.(T), true
}
