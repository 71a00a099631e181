package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONColumn stores any JSON-marshalable Go value in a single jsonb column,
// the same role the teacher's controllers/aerisweather.go gives
// pgtype.JSONB-typed struct fields, generalized here with a type parameter
// so every blob column (condition extra, boundary, forecast sequences)
// shares one implementation instead of one hand-rolled Scan/Value pair each.
type JSONColumn[T any] struct {
	Data T
}

// Value implements driver.Valuer.
func (j JSONColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Data)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner.
func (j *JSONColumn[T]) Scan(value any) error {
	if value == nil {
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("JSONColumn: unsupported scan type %T", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, &j.Data)
}

// GormDataType tells GORM's postgres driver to use jsonb for this column.
func (JSONColumn[T]) GormDataType() string {
	return "jsonb"
}
