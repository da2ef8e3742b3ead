package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ColumnMap represents the columns of a row, stored as a JSON object in PostgreSQL
type ColumnMap map[string]string

// Value implements the driver.Valuer interface for ColumnMap
func (c ColumnMap) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for ColumnMap
func (c *ColumnMap) Scan(value interface{}) error {
	if value == nil {
		*c = make(ColumnMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported column map type %T", value)
	}

	result := make(ColumnMap)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*c = result
	return nil
}
