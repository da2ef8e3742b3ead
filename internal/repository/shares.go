package repository

import (
	"context"
	"sort"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/tracing"
)

type sharesRepository struct {
	shares line
}

func NewSharesRepository(store interfaces.ColumnStore) interfaces.SharesRepository {
	return &sharesRepository{
		shares: line{store: store, cf: enum.ColumnFamilyShares},
	}
}

func (r *sharesRepository) AddShare(ctx context.Context, statusID, login string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "sharesRepository.AddShare")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	err := r.shares.add(ctx, statusID, login)
	tracing.TraceErr(span, err)
	return err
}

// GetSharedBy returns the logins that shared the status, sorted
func (r *sharesRepository) GetSharedBy(ctx context.Context, statusID string) ([]string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "sharesRepository.GetSharedBy")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	logins, err := r.shares.members(ctx, statusID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	sort.Strings(logins)
	return logins, nil
}
