package repository

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/columnstore"
	"github.com/customeros/statusstack/internal/enum"
	apperrors "github.com/customeros/statusstack/internal/errors"
	"github.com/customeros/statusstack/internal/utils"
)

// line is a row whose column names are the members, values unused
type line struct {
	store interfaces.ColumnStore
	cf    enum.ColumnFamily
}

func (l line) add(ctx context.Context, rowKey, member string) error {
	return l.store.PutColumns(ctx, l.cf, rowKey, map[string]string{member: ""})
}

func (l line) remove(ctx context.Context, rowKey, member string) error {
	return l.store.DeleteColumns(ctx, l.cf, rowKey, member)
}

func (l line) members(ctx context.Context, rowKey string) ([]string, error) {
	columns, err := l.store.GetRow(ctx, l.cf, rowKey)
	if err != nil {
		if errors.Is(err, columnstore.ErrRowNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	members := make([]string, 0, len(columns))
	for name := range columns {
		members = append(members, name)
	}
	return members, nil
}

// statusIDs returns the status ids of the line, oldest first
func (l line) statusIDs(ctx context.Context, rowKey string) ([]string, error) {
	ids, err := l.members(ctx, rowKey)
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool {
		return utils.CompareTimeUUIDs(ids[i], ids[j]) < 0
	})
	return ids, nil
}

// page applies a TimelineQuery to ids sorted oldest first and returns the
// selected ids newest first
func page(ids []string, query interfaces.TimelineQuery) ([]string, error) {
	for _, cursor := range []string{query.SinceID, query.MaxID} {
		if cursor == "" {
			continue
		}
		if _, err := utils.TimeUUIDTicks(cursor); err != nil {
			return nil, errors.Wrap(apperrors.ErrInvalidCursor, err.Error())
		}
	}

	result := make([]string, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if query.MaxID != "" && utils.CompareTimeUUIDs(id, query.MaxID) >= 0 {
			continue
		}
		if query.SinceID != "" && utils.CompareTimeUUIDs(id, query.SinceID) <= 0 {
			break
		}
		result = append(result, id)
		if query.Count > 0 && len(result) == query.Count {
			break
		}
	}
	return result, nil
}
