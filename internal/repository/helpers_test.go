package repository

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/columnstore"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/validation"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		LogLevel: "debug",
		DevMode:  true,
	})
	appLogger.InitLogger()
	return appLogger
}

func newInMemoryStore(t *testing.T) interfaces.ColumnStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	store := columnstore.NewBadgerStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type mockColumnStore struct {
	mock.Mock
}

func (m *mockColumnStore) GetRow(ctx context.Context, cf enum.ColumnFamily, rowKey string) (map[string]string, error) {
	args := m.Called(ctx, cf, rowKey)
	columns, _ := args.Get(0).(map[string]string)
	return columns, args.Error(1)
}

func (m *mockColumnStore) PutRow(ctx context.Context, cf enum.ColumnFamily, rowKey string, columns map[string]string) error {
	return m.Called(ctx, cf, rowKey, columns).Error(0)
}

func (m *mockColumnStore) PutColumns(ctx context.Context, cf enum.ColumnFamily, rowKey string, columns map[string]string) error {
	return m.Called(ctx, cf, rowKey, columns).Error(0)
}

func (m *mockColumnStore) DeleteColumns(ctx context.Context, cf enum.ColumnFamily, rowKey string, names ...string) error {
	return m.Called(ctx, cf, rowKey, names).Error(0)
}

func (m *mockColumnStore) DeleteRow(ctx context.Context, cf enum.ColumnFamily, rowKey string) error {
	return m.Called(ctx, cf, rowKey).Error(0)
}

func (m *mockColumnStore) DeleteRowIf(ctx context.Context, cf enum.ColumnFamily, rowKey, column, value string) (bool, error) {
	args := m.Called(ctx, cf, rowKey, column, value)
	return args.Bool(0), args.Error(1)
}

func (m *mockColumnStore) ScanRows(ctx context.Context, cf enum.ColumnFamily, visit interfaces.RowVisitor) error {
	return m.Called(ctx, cf, visit).Error(0)
}

func (m *mockColumnStore) Close() error {
	return m.Called().Error(0)
}

func newAttachmentRepository(store interfaces.ColumnStore) interfaces.AttachmentRepository {
	return NewAttachmentRepository(store, validation.NewValidator(), getLogger())
}
