package orm

import (
	"fmt"
	"slices"
)

// Schema is the metadata of one entity type: table, key, ordered fields
// and the canned statements derived from them. A Schema is immutable and
// safe for concurrent use.
type Schema struct {
	mappings   map[string]Field
	entity     string
	table      string
	primaryKey string
	fields     []string
	selectSQL  string
	insertSQL  string
	updateSQL  string
	deleteSQL  string
}

// SchemaOption configures a Schema.
type SchemaOption func(*Schema)

// WithTable overrides the table name, which defaults to the entity name.
func WithTable(name string) SchemaOption {
	return func(s *Schema) {
		if name != "" {
			s.table = name
		}
	}
}

// NewSchema builds the metadata for an entity from its declared fields.
// Exactly one field must be the primary key.
//
// Example:
//
//	users, err := orm.NewSchema("User", []orm.Field{
//	    orm.StringField("id", orm.PrimaryKey(), orm.Default(id.NextID), orm.ColumnType("varchar(50)")),
//	    orm.StringField("email", orm.ColumnType("varchar(50)")),
//	    orm.BooleanField("admin"),
//	}, orm.WithTable("users"))
func NewSchema(entity string, fields []Field, opts ...SchemaOption) (*Schema, error) {
	if entity == "" {
		return nil, ErrEmptyEntity
	}

	s := &Schema{
		entity:   entity,
		table:    entity,
		mappings: make(map[string]Field, len(fields)),
		fields:   make([]string, 0, len(fields)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: %s has a field without a name", ErrInvalidField, entity)
		}
		if _, ok := s.mappings[f.Name]; ok {
			return nil, fmt.Errorf("%w: %s declares %q twice", ErrInvalidField, entity, f.Name)
		}
		s.mappings[f.Name] = f

		if !f.PrimaryKey {
			s.fields = append(s.fields, f.Name)
			continue
		}
		if s.primaryKey != "" {
			return nil, fmt.Errorf("%w for field: %s", ErrDuplicatePrimaryKey, f.Name)
		}
		s.primaryKey = f.Name
	}

	if s.primaryKey == "" {
		return nil, ErrPrimaryKeyNotFound
	}

	s.selectSQL = buildSelect(s.table, s.primaryKey, s.fields)
	s.insertSQL = buildInsert(s.table, s.primaryKey, s.fields)
	s.updateSQL = buildUpdate(s.table, s.primaryKey, s.fields)
	s.deleteSQL = buildDelete(s.table, s.primaryKey)

	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid definition.
// Use it for package-level schema variables.
func MustSchema(entity string, fields []Field, opts ...SchemaOption) *Schema {
	s, err := NewSchema(entity, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Entity returns the entity name the schema was declared with.
func (s *Schema) Entity() string { return s.entity }

// Table returns the table name.
func (s *Schema) Table() string { return s.table }

// PrimaryKey returns the primary key field name.
func (s *Schema) PrimaryKey() string { return s.primaryKey }

// Fields returns the non-key field names in declaration order.
func (s *Schema) Fields() []string { return slices.Clone(s.fields) }

// Columns returns the primary key followed by the non-key fields,
// the column order of SelectSQL.
func (s *Schema) Columns() []string {
	return append([]string{s.primaryKey}, s.fields...)
}

// Field returns the descriptor for the named attribute.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.mappings[name]
	return f, ok
}

func (s *Schema) SelectSQL() string { return s.selectSQL }
func (s *Schema) InsertSQL() string { return s.insertSQL }
func (s *Schema) UpdateSQL() string { return s.updateSQL }
func (s *Schema) DeleteSQL() string { return s.deleteSQL }
