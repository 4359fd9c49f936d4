package orm

import (
	"fmt"
	"strconv"
)

// Row maps column names to values. It is returned by Select and used to
// move attribute values between entity structs and statements.
type Row map[string]any

// Has reports whether the row carries a non-nil value for name.
func (r Row) Has(name string) bool {
	v, ok := r[name]
	return ok && v != nil
}

// String returns the value as a string. Byte slices from the driver are
// converted; nil yields "".
func (r Row) String(name string) (string, error) {
	switch v := r[name].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case int64, int, float64, float32, bool:
		return fmt.Sprint(v), nil
	default:
		return "", convertError(name, v, "string")
	}
}

// Int64 returns the value as an int64.
func (r Row) Int64(name string) (int64, error) {
	if r[name] == nil {
		return 0, nil
	}
	v, ok := ToInt64(r[name])
	if !ok {
		return 0, convertError(name, r[name], "int64")
	}
	return v, nil
}

// Float64 returns the value as a float64.
func (r Row) Float64(name string) (float64, error) {
	switch v := r[name].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case []byte:
		return parseFloat(name, string(v))
	case string:
		return parseFloat(name, v)
	default:
		return 0, convertError(name, v, "float64")
	}
}

// Bool returns the value as a bool. MySQL reports boolean columns as
// tinyint, so integers are accepted.
func (r Row) Bool(name string) (bool, error) {
	switch v := r[name].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case []byte:
		return parseBool(name, string(v))
	case string:
		return parseBool(name, v)
	default:
		return false, convertError(name, v, "bool")
	}
}

// ToInt64 converts a driver scalar to int64. It reports false for nil
// and for values that are not integral.
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case []byte:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// PutNonZero stores v under name unless it is the zero value, leaving the
// attribute absent so the field default applies on save.
func PutNonZero[T comparable](r Row, name string, v T) {
	var zero T
	if v != zero {
		r[name] = v
	}
}

func parseFloat(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, convertError(name, s, "float64")
	}
	return f, nil
}

func parseBool(name, s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, convertError(name, s, "bool")
	}
	return b, nil
}

func convertError(name string, v any, target string) error {
	return fmt.Errorf("%w: %s (%T) to %s", ErrConvert, name, v, target)
}
