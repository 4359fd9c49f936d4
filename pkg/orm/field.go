package orm

import "time"

// Column types used by the field constructors.
const (
	TypeString  = "varchar(100)"
	TypeBoolean = "boolean"
	TypeInteger = "bigint"
	TypeFloat   = "real"
	TypeText    = "text"
)

// Field describes the storage column of one entity attribute.
// Fields are values: options are applied at construction and never after.
type Field struct {
	// Default is either a plain value or a producer of type func() any.
	Default    any
	Name       string
	ColumnType string
	PrimaryKey bool
}

// FieldOption configures a Field at construction time.
type FieldOption func(*Field)

// PrimaryKey marks the field as the entity's primary key.
func PrimaryKey() FieldOption {
	return func(f *Field) {
		f.PrimaryKey = true
	}
}

// Default sets the value used when the attribute is absent on save.
// A func() any is called on each resolution instead of being stored.
//
// Example:
//
//	orm.StringField("id", orm.PrimaryKey(), orm.Default(id.NextID))
func Default(v any) FieldOption {
	return func(f *Field) {
		switch fn := v.(type) {
		case func() any:
			f.Default = fn
		case func() string:
			f.Default = func() any { return fn() }
		case func() float64:
			f.Default = func() any { return fn() }
		case func() int64:
			f.Default = func() any { return fn() }
		default:
			f.Default = v
		}
	}
}

// ColumnType overrides the column DDL type, e.g. "varchar(50)".
func ColumnType(ddl string) FieldOption {
	return func(f *Field) {
		if ddl != "" {
			f.ColumnType = ddl
		}
	}
}

func newField(name, ddl string, def any, opts []FieldOption) Field {
	f := Field{Name: name, ColumnType: ddl, Default: def}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// StringField declares a varchar(100) column.
func StringField(name string, opts ...FieldOption) Field {
	return newField(name, TypeString, nil, opts)
}

// BooleanField declares a boolean column defaulting to false.
func BooleanField(name string, opts ...FieldOption) Field {
	return newField(name, TypeBoolean, false, opts)
}

// IntegerField declares a bigint column defaulting to 0.
func IntegerField(name string, opts ...FieldOption) Field {
	return newField(name, TypeInteger, int64(0), opts)
}

// FloatField declares a real column defaulting to 0.0.
func FloatField(name string, opts ...FieldOption) Field {
	return newField(name, TypeFloat, 0.0, opts)
}

// TextField declares a text column.
func TextField(name string, opts ...FieldOption) Field {
	return newField(name, TypeText, nil, opts)
}

// DefaultValue resolves the field default, calling the producer if one is set.
func (f Field) DefaultValue() any {
	if fn, ok := f.Default.(func() any); ok {
		return fn()
	}
	return f.Default
}

// HasDefault reports whether the field declares any default.
func (f Field) HasDefault() bool {
	return f.Default != nil
}

// Now returns the current time as fractional Unix seconds.
// It is the usual default producer for timestamp fields.
func Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
