package columnstore

import (
	"context"
	"sort"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/enum"
)

func newTestStore(t *testing.T) interfaces.ColumnStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	store := NewBadgerStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerStore_GetRow_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRow(context.Background(), enum.ColumnFamilyAttachment, "missing")

	assert.True(t, errors.Is(err, ErrRowNotFound))
}

func TestBadgerStore_PutRow_Replaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyAttachment, "row", map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyAttachment, "row", map[string]string{"a": "3"}))

	columns, err := store.GetRow(ctx, enum.ColumnFamilyAttachment, "row")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "3"}, columns)
}

func TestBadgerStore_PutColumns_Merges(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.PutColumns(ctx, enum.ColumnFamilyTimeline, "jdoe", map[string]string{"s1": ""}))
	require.NoError(t, store.PutColumns(ctx, enum.ColumnFamilyTimeline, "jdoe", map[string]string{"s2": ""}))

	columns, err := store.GetRow(ctx, enum.ColumnFamilyTimeline, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"s1": "", "s2": ""}, columns)
}

func TestBadgerStore_DeleteColumns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.PutColumns(ctx, enum.ColumnFamilyTimeline, "jdoe", map[string]string{"s1": "", "s2": ""}))
	require.NoError(t, store.DeleteColumns(ctx, enum.ColumnFamilyTimeline, "jdoe", "s1", "unknown"))
	require.NoError(t, store.DeleteColumns(ctx, enum.ColumnFamilyTimeline, "nobody", "s1"))

	columns, err := store.GetRow(ctx, enum.ColumnFamilyTimeline, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"s2": ""}, columns)
}

func TestBadgerStore_DeleteRow_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyStatus, "s1", map[string]string{"content": "x"}))
	require.NoError(t, store.DeleteRow(ctx, enum.ColumnFamilyStatus, "s1"))
	require.NoError(t, store.DeleteRow(ctx, enum.ColumnFamilyStatus, "s1"))

	_, err := store.GetRow(ctx, enum.ColumnFamilyStatus, "s1")
	assert.True(t, errors.Is(err, ErrRowNotFound))
}

func TestBadgerStore_ScanRows_StaysInColumnFamily(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyAttachment, "a1", map[string]string{"filename": "a"}))
	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyAttachment, "a2", map[string]string{"filename": "b"}))
	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyStatus, "s1", map[string]string{"content": "c"}))

	var keys []string
	err := store.ScanRows(ctx, enum.ColumnFamilyAttachment, func(rowKey string, columns map[string]string) error {
		keys = append(keys, rowKey)
		assert.NotEmpty(t, columns["filename"])
		return nil
	})
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"a1", "a2"}, keys)
}

func TestBadgerStore_ScanRows_StopsOnVisitorError(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	stop := errors.New("stop")

	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyAttachment, "a1", map[string]string{}))
	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyAttachment, "a2", map[string]string{}))

	visited := 0
	err := store.ScanRows(ctx, enum.ColumnFamilyAttachment, func(string, map[string]string) error {
		visited++
		return stop
	})

	assert.True(t, errors.Is(err, stop))
	assert.Equal(t, 1, visited)
}

func TestBadgerStore_CancelledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.PutRow(ctx, enum.ColumnFamilyStatus, "s1", map[string]string{})

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBadgerStore_DeleteRowIf(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyAttachment, "live", map[string]string{"removed": "false"}))
	require.NoError(t, store.PutRow(ctx, enum.ColumnFamilyAttachment, "gone", map[string]string{"removed": "true"}))

	deleted, err := store.DeleteRowIf(ctx, enum.ColumnFamilyAttachment, "live", "removed", "true")
	require.NoError(t, err)
	assert.False(t, deleted)
	_, err = store.GetRow(ctx, enum.ColumnFamilyAttachment, "live")
	assert.NoError(t, err)

	deleted, err = store.DeleteRowIf(ctx, enum.ColumnFamilyAttachment, "gone", "removed", "true")
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = store.GetRow(ctx, enum.ColumnFamilyAttachment, "gone")
	assert.True(t, errors.Is(err, ErrRowNotFound))

	deleted, err = store.DeleteRowIf(ctx, enum.ColumnFamilyAttachment, "missing", "removed", "true")
	require.NoError(t, err)
	assert.False(t, deleted)
}
