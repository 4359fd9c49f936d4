// Package orm is a small mapping layer between entity structs and SQL tables.
//
// An entity is described by a [Schema], built once from an ordered list of
// [Field] values. Exactly one field is the primary key. The schema derives
// four canned statements from the fields: select, insert, update by key and
// delete by key.
//
//	var blogSchema = orm.MustSchema("Blog", []orm.Field{
//	    orm.StringField("id", orm.PrimaryKey(), orm.Default(id.NextID), orm.ColumnType("varchar(50)")),
//	    orm.StringField("name", orm.ColumnType("varchar(50)")),
//	    orm.TextField("content"),
//	    orm.FloatField("created_at", orm.Default(orm.Now)),
//	}, orm.WithTable("blogs"))
//
// # Entities
//
// Entities are plain structs implementing [Model]. Values reports the
// attributes that are set; Assign fills the struct from a [Row].
//
// # Tables
//
// [Table] binds a schema to a [DB] and provides Find, FindAll, FindNumber,
// Save, Update and Remove:
//
//	blogs := orm.NewTable[Blog](db, blogSchema)
//	page, err := blogs.FindAll(ctx,
//	    orm.OrderBy("created_at desc"),
//	    orm.Limit([2]int{0, 10}),
//	)
//
// # Statements
//
// Statements are written in a canonical form with backtick identifiers and
// "?" placeholders. The [Dialect] of the DB rewrites them for the engine, so
// the same schema runs on MySQL and PostgreSQL.
//
// # Affected rows
//
// Save, Update and Remove expect exactly one affected row. In [Lenient]
// mode (the default) any other count is logged as a warning. In [Strict]
// mode it is returned as [ErrAffectedRows].
package orm
