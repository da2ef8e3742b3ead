package models

import "time"

// ColumnFamilyRow is one row of the column store when it is backed by postgres
type ColumnFamilyRow struct {
	ColumnFamily string    `gorm:"column:column_family;type:varchar(64);primaryKey"`
	RowKey       string    `gorm:"column:row_key;type:varchar(255);primaryKey"`
	Columns      ColumnMap `gorm:"column:columns;type:jsonb;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
}

// TableName overrides the table name for ColumnFamilyRow
func (ColumnFamilyRow) TableName() string {
	return "column_family_rows"
}
