package orm

import "errors"

var (
	ErrPrimaryKeyNotFound  = errors.New("orm: primary key not found")
	ErrDuplicatePrimaryKey = errors.New("orm: duplicate primary key")
	ErrInvalidField        = errors.New("orm: invalid field")
	ErrEmptyEntity         = errors.New("orm: entity name required")
	ErrInvalidLimit        = errors.New("orm: invalid limit value")
	ErrAffectedRows        = errors.New("orm: unexpected affected rows")
	ErrMissingValue        = errors.New("orm: missing field value")
	ErrConvert             = errors.New("orm: cannot convert value")
)
