package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/tracing"
)

type timelineRepository struct {
	timeline line
	userline line
}

// NewTimelineRepository stores the home timeline and the userline of each
// user, one row per username
func NewTimelineRepository(store interfaces.ColumnStore) interfaces.TimelineRepository {
	return &timelineRepository{
		timeline: line{store: store, cf: enum.ColumnFamilyTimeline},
		userline: line{store: store, cf: enum.ColumnFamilyUserline},
	}
}

func (r *timelineRepository) AddStatusToTimeline(ctx context.Context, username, statusID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "timelineRepository.AddStatusToTimeline")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	err := r.timeline.add(ctx, username, statusID)
	tracing.TraceErr(span, err)
	return err
}

func (r *timelineRepository) AddStatusToUserline(ctx context.Context, username, statusID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "timelineRepository.AddStatusToUserline")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	err := r.userline.add(ctx, username, statusID)
	tracing.TraceErr(span, err)
	return err
}

func (r *timelineRepository) RemoveStatusFromTimeline(ctx context.Context, username, statusID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "timelineRepository.RemoveStatusFromTimeline")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	err := r.timeline.remove(ctx, username, statusID)
	tracing.TraceErr(span, err)
	return err
}

func (r *timelineRepository) RemoveStatusFromUserline(ctx context.Context, username, statusID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "timelineRepository.RemoveStatusFromUserline")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	err := r.userline.remove(ctx, username, statusID)
	tracing.TraceErr(span, err)
	return err
}

func (r *timelineRepository) GetTimeline(ctx context.Context, username string, query interfaces.TimelineQuery) ([]string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "timelineRepository.GetTimeline")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	span.LogKV("username", username, "count", query.Count, "sinceId", query.SinceID, "maxId", query.MaxID)

	return r.read(ctx, span, r.timeline, username, query)
}

func (r *timelineRepository) GetUserline(ctx context.Context, username string, query interfaces.TimelineQuery) ([]string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "timelineRepository.GetUserline")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	span.LogKV("username", username, "count", query.Count, "sinceId", query.SinceID, "maxId", query.MaxID)

	return r.read(ctx, span, r.userline, username, query)
}

func (r *timelineRepository) read(ctx context.Context, span opentracing.Span, l line, username string, query interfaces.TimelineQuery) ([]string, error) {
	ids, err := l.statusIDs(ctx, username)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	result, err := page(ids, query)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return result, nil
}
