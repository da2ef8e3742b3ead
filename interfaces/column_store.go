package interfaces

import (
	"context"

	"github.com/customeros/statusstack/internal/enum"
)

// RowVisitor is called once per row by ColumnStore.ScanRows. Returning an
// error stops the scan.
type RowVisitor func(rowKey string, columns map[string]string) error

// ColumnStore is a minimal column family store: rows addressed by
// (column family, row key), each holding named string columns
type ColumnStore interface {
	GetRow(ctx context.Context, cf enum.ColumnFamily, rowKey string) (map[string]string, error)
	PutRow(ctx context.Context, cf enum.ColumnFamily, rowKey string, columns map[string]string) error
	PutColumns(ctx context.Context, cf enum.ColumnFamily, rowKey string, columns map[string]string) error
	DeleteColumns(ctx context.Context, cf enum.ColumnFamily, rowKey string, names ...string) error
	DeleteRow(ctx context.Context, cf enum.ColumnFamily, rowKey string) error
	// DeleteRowIf deletes the row only while column holds value, reporting
	// whether a row was deleted
	DeleteRowIf(ctx context.Context, cf enum.ColumnFamily, rowKey, column, value string) (bool, error)
	ScanRows(ctx context.Context, cf enum.ColumnFamily, visit RowVisitor) error
	Close() error
}
