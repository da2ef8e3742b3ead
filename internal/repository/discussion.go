package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/tracing"
)

type discussionRepository struct {
	replies line
}

func NewDiscussionRepository(store interfaces.ColumnStore) interfaces.DiscussionRepository {
	return &discussionRepository{
		replies: line{store: store, cf: enum.ColumnFamilyDiscussion},
	}
}

func (r *discussionRepository) AddReply(ctx context.Context, originalStatusID, replyStatusID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "discussionRepository.AddReply")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, originalStatusID)

	err := r.replies.add(ctx, originalStatusID, replyStatusID)
	tracing.TraceErr(span, err)
	return err
}

// GetReplies returns the reply ids, oldest first
func (r *discussionRepository) GetReplies(ctx context.Context, originalStatusID string) ([]string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "discussionRepository.GetReplies")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, originalStatusID)

	ids, err := r.replies.statusIDs(ctx, originalStatusID)
	tracing.TraceErr(span, err)
	return ids, err
}

func (r *discussionRepository) HasReplies(ctx context.Context, originalStatusID string) (bool, error) {
	ids, err := r.replies.members(ctx, originalStatusID)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}
