package columnstore

import (
	"context"
	"encoding/json"

	"github.com/dgraph-io/badger/v3"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/tracing"
)

// maxConflictRetries bounds read-modify-write retries on badger.ErrConflict
const maxConflictRetries = 5

type badgerStore struct {
	db *badger.DB
}

// NewBadgerStore keeps every row under "<ColumnFamily>:<rowKey>" with the
// columns JSON encoded as the value
func NewBadgerStore(db *badger.DB) interfaces.ColumnStore {
	return &badgerStore{db: db}
}

func badgerKey(cf enum.ColumnFamily, rowKey string) []byte {
	return []byte(cf.String() + ":" + rowKey)
}

func badgerPrefix(cf enum.ColumnFamily) []byte {
	return []byte(cf.String() + ":")
}

func readColumns(txn *badger.Txn, key []byte) (map[string]string, error) {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrRowNotFound
		}
		return nil, err
	}

	columns := make(map[string]string)
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &columns)
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode row")
	}
	return columns, nil
}

func writeColumns(txn *badger.Txn, key []byte, columns map[string]string) error {
	encoded, err := json.Marshal(columns)
	if err != nil {
		return errors.Wrap(err, "encode row")
	}
	return txn.Set(key, encoded)
}

// update runs fn in a read-write transaction, retrying on conflicts
func (s *badgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *badgerStore) GetRow(ctx context.Context, cf enum.ColumnFamily, rowKey string) (map[string]string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "badgerStore.GetRow")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var columns map[string]string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		columns, err = readColumns(txn, badgerKey(cf, rowKey))
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrRowNotFound) {
			tracing.TraceErr(span, err)
		}
		return nil, err
	}
	return columns, nil
}

func (s *badgerStore) PutRow(ctx context.Context, cf enum.ColumnFamily, rowKey string, columns map[string]string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "badgerStore.PutRow")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	err := s.update(ctx, func(txn *badger.Txn) error {
		return writeColumns(txn, badgerKey(cf, rowKey), columns)
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "put row %s/%s", cf, rowKey)
	}
	return nil
}

func (s *badgerStore) PutColumns(ctx context.Context, cf enum.ColumnFamily, rowKey string, columns map[string]string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "badgerStore.PutColumns")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	key := badgerKey(cf, rowKey)
	err := s.update(ctx, func(txn *badger.Txn) error {
		existing, err := readColumns(txn, key)
		if err != nil && !errors.Is(err, ErrRowNotFound) {
			return err
		}
		if existing == nil {
			existing = make(map[string]string, len(columns))
		}
		for name, value := range columns {
			existing[name] = value
		}
		return writeColumns(txn, key, existing)
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "put columns %s/%s", cf, rowKey)
	}
	return nil
}

func (s *badgerStore) DeleteColumns(ctx context.Context, cf enum.ColumnFamily, rowKey string, names ...string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "badgerStore.DeleteColumns")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	key := badgerKey(cf, rowKey)
	err := s.update(ctx, func(txn *badger.Txn) error {
		existing, err := readColumns(txn, key)
		if errors.Is(err, ErrRowNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, name := range names {
			delete(existing, name)
		}
		return writeColumns(txn, key, existing)
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "delete columns %s/%s", cf, rowKey)
	}
	return nil
}

func (s *badgerStore) DeleteRow(ctx context.Context, cf enum.ColumnFamily, rowKey string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "badgerStore.DeleteRow")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	err := s.update(ctx, func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(cf, rowKey))
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "delete row %s/%s", cf, rowKey)
	}
	return nil
}

func (s *badgerStore) DeleteRowIf(ctx context.Context, cf enum.ColumnFamily, rowKey, column, value string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "badgerStore.DeleteRowIf")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())
	tracing.TagEntity(span, rowKey)

	key := badgerKey(cf, rowKey)
	var deleted bool
	err := s.update(ctx, func(txn *badger.Txn) error {
		deleted = false
		existing, err := readColumns(txn, key)
		if errors.Is(err, ErrRowNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if current, ok := existing[column]; !ok || current != value {
			return nil
		}
		deleted = true
		return txn.Delete(key)
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return false, errors.Wrapf(err, "delete row %s/%s", cf, rowKey)
	}
	return deleted, nil
}

func (s *badgerStore) ScanRows(ctx context.Context, cf enum.ColumnFamily, visit interfaces.RowVisitor) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "badgerStore.ScanRows")
	defer span.Finish()
	tracing.TagComponentColumnStore(span, cf.String())

	prefix := badgerPrefix(cf)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			rowKey := string(item.Key()[len(prefix):])

			columns := make(map[string]string)
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &columns)
			})
			if err != nil {
				return errors.Wrapf(err, "decode row %s", rowKey)
			}
			if err := visit(rowKey, columns); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
