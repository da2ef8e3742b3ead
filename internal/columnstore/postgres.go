package columnstore

import (
	"context"

	"github.com/lib/pq"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/models"
	"github.com/customeros/statusstack/internal/tracing"
	"github.com/customeros/statusstack/internal/utils"
)

type postgresStore struct {
	db *gorm.DB
}

// NewPostgresStore keeps rows in the column_family_rows table, columns as jsonb
func NewPostgresStore(db *gorm.DB) interfaces.ColumnStore {
	return &postgresStore{db: db}
}

// MigratePostgresStore creates the column_family_rows table
func MigratePostgresStore(db *gorm.DB) error {
	return db.AutoMigrate(&models.ColumnFamilyRow{})
}

var rowPrimaryKey = []clause.Column{{Name: "column_family"}, {Name: "row_key"}}

func (s *postgresStore) rows(ctx context.Context, cf enum.ColumnFamily) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.ColumnFamilyRow{}).Where("column_family = ?", cf.String())
}

func (s *postgresStore) GetRow(ctx context.Context, cf enum.ColumnFamily, rowKey string) (map[string]string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postgresStore.GetRow")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	var row models.ColumnFamilyRow
	err := s.rows(ctx, cf).Where("row_key = ?", rowKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRowNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return copyColumns(row.Columns), nil
}

func (s *postgresStore) PutRow(ctx context.Context, cf enum.ColumnFamily, rowKey string, columns map[string]string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postgresStore.PutRow")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	row := models.ColumnFamilyRow{
		ColumnFamily: cf.String(),
		RowKey:       rowKey,
		Columns:      copyColumns(columns),
		UpdatedAt:    utils.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   rowPrimaryKey,
			DoUpdates: clause.AssignmentColumns([]string{"columns", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "put row %s/%s", cf, rowKey)
	}
	return nil
}

func (s *postgresStore) PutColumns(ctx context.Context, cf enum.ColumnFamily, rowKey string, columns map[string]string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postgresStore.PutColumns")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	row := models.ColumnFamilyRow{
		ColumnFamily: cf.String(),
		RowKey:       rowKey,
		Columns:      copyColumns(columns),
		UpdatedAt:    utils.Now(),
	}
	// jsonb concatenation merges in a single statement
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: rowPrimaryKey,
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "columns"}, Value: gorm.Expr("column_family_rows.columns || EXCLUDED.columns")},
				{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("EXCLUDED.updated_at")},
			},
		}).
		Create(&row).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "put columns %s/%s", cf, rowKey)
	}
	return nil
}

func (s *postgresStore) DeleteColumns(ctx context.Context, cf enum.ColumnFamily, rowKey string, names ...string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postgresStore.DeleteColumns")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	if len(names) == 0 {
		return nil
	}

	err := s.rows(ctx, cf).
		Where("row_key = ?", rowKey).
		Updates(map[string]interface{}{
			"columns":    gorm.Expr("columns - ?::text[]", pq.Array(names)),
			"updated_at": utils.Now(),
		}).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "delete columns %s/%s", cf, rowKey)
	}
	return nil
}

func (s *postgresStore) DeleteRow(ctx context.Context, cf enum.ColumnFamily, rowKey string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postgresStore.DeleteRow")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	err := s.db.WithContext(ctx).
		Where("column_family = ? AND row_key = ?", cf.String(), rowKey).
		Delete(&models.ColumnFamilyRow{}).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "delete row %s/%s", cf, rowKey)
	}
	return nil
}

func (s *postgresStore) DeleteRowIf(ctx context.Context, cf enum.ColumnFamily, rowKey, column, value string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postgresStore.DeleteRowIf")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	result := s.db.WithContext(ctx).
		Where("column_family = ? AND row_key = ? AND columns->>? = ?", cf.String(), rowKey, column, value).
		Delete(&models.ColumnFamilyRow{})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return false, errors.Wrapf(result.Error, "delete row %s/%s", cf, rowKey)
	}
	return result.RowsAffected > 0, nil
}

func (s *postgresStore) ScanRows(ctx context.Context, cf enum.ColumnFamily, visit interfaces.RowVisitor) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postgresStore.ScanRows")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())

	rows, err := s.rows(ctx, cf).Order("row_key").Rows()
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "scan %s", cf)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.ColumnFamilyRow
		if err := s.db.ScanRows(rows, &row); err != nil {
			tracing.TraceErr(span, err)
			return errors.Wrapf(err, "scan %s", cf)
		}
		if err := visit(row.RowKey, copyColumns(row.Columns)); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *postgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
