package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONList is an ordered list stored in a single JSON column. It wraps
// gorm.io/datatypes.JSONSlice so that an empty or NULL column always
// serializes as [] to clients.
type JSONList[T any] []T

// Value stores the list through datatypes.JSONSlice
func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		l = JSONList[T]{}
	}
	return datatypes.NewJSONSlice([]T(l)).Value()
}

// Scan promotes datatypes.JSONSlice's Scan method, treating NULL as empty
func (l *JSONList[T]) Scan(value interface{}) error {
	if value == nil {
		*l = JSONList[T]{}
		return nil
	}
	var s datatypes.JSONSlice[T]
	if err := s.Scan(value); err != nil {
		return err
	}
	*l = JSONList[T](s)
	if *l == nil {
		*l = JSONList[T]{}
	}
	return nil
}

// MarshalJSON never emits null
func (l JSONList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}

// GormDataType declares the generic column type
func (JSONList[T]) GormDataType() string {
	return "json"
}

// GormDBDataType ensures the correct data type is used for each database driver.
// This resolves the issue where MSSQL does not support the 'json' data type.
func (JSONList[T]) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
